package notification

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twitch_discord_bot/internal/models"
)

type fakeGateway struct {
	channelName string
	found       bool
	canSend     bool
	permErr     error
	sendErrs    []error
	sent        []models.Notification
}

func (f *fakeGateway) ChannelName(channelID string) (string, bool) {
	return f.channelName, f.found
}

func (f *fakeGateway) CanSendMessages(channelID string) (bool, error) {
	return f.canSend, f.permErr
}

func (f *fakeGateway) SendNotification(ctx context.Context, channelID string, notification models.Notification) error {
	f.sent = append(f.sent, notification)
	if len(f.sendErrs) == 0 {
		return nil
	}
	err := f.sendErrs[0]
	if len(f.sendErrs) > 1 {
		f.sendErrs = f.sendErrs[1:]
	}
	return err
}

func newTestDispatcher(gateway *fakeGateway, roleID string) (*Dispatcher, *[]time.Duration) {
	delays := &[]time.Duration{}
	d := NewDispatcher(gateway, "123", roleID)
	d.sleep = func(ctx context.Context, delay time.Duration) error {
		*delays = append(*delays, delay)
		return nil
	}
	return d, delays
}

func readyGateway(errs ...error) *fakeGateway {
	return &fakeGateway{channelName: "streams", found: true, canSend: true, sendErrs: errs}
}

var event = models.TransitionEvent{
	Record:     models.StreamRecord{UserLogin: "alice", UserName: "Alice", Title: "hello"},
	DetectedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
}

func TestSendDelivered(t *testing.T) {
	gateway := readyGateway()
	d, delays := newTestDispatcher(gateway, "")

	assert.Equal(t, models.OutcomeDelivered, d.Send(context.Background(), event))
	require.Len(t, gateway.sent, 1)
	assert.Equal(t, "@everyone", gateway.sent[0].Content)
	assert.Equal(t, "https://www.twitch.tv/alice", gateway.sent[0].Embed.URL)
	assert.Equal(t, event.DetectedAt, gateway.sent[0].Embed.Timestamp)
	assert.Empty(t, *delays)
}

func TestSendRoleMention(t *testing.T) {
	gateway := readyGateway()
	d, _ := newTestDispatcher(gateway, "987")

	d.Send(context.Background(), event)
	require.Len(t, gateway.sent, 1)
	assert.Equal(t, "<@&987>", gateway.sent[0].Content)
}

func TestSendNoDestination(t *testing.T) {
	gateway := &fakeGateway{}
	d, _ := newTestDispatcher(gateway, "")

	assert.Equal(t, models.OutcomeSkippedNoDestination, d.Send(context.Background(), event))
	assert.Empty(t, gateway.sent)
}

func TestSendNoPermission(t *testing.T) {
	gateway := &fakeGateway{channelName: "streams", found: true}
	d, _ := newTestDispatcher(gateway, "")

	assert.Equal(t, models.OutcomeSkippedNoPermission, d.Send(context.Background(), event))
	assert.Empty(t, gateway.sent)
}

func TestSendPermissionCheckError(t *testing.T) {
	gateway := readyGateway()
	gateway.canSend = false
	gateway.permErr = errors.New("state cache miss")
	d, _ := newTestDispatcher(gateway, "")

	assert.Equal(t, models.OutcomeDelivered, d.Send(context.Background(), event))
}

func TestSendRetriesUnavailable(t *testing.T) {
	gateway := readyGateway(errors.Wrap(models.ErrDeliveryUnavailable, "503"))
	d, delays := newTestDispatcher(gateway, "")

	assert.Equal(t, models.OutcomeAbandonedAfterRetries, d.Send(context.Background(), event))
	assert.Len(t, gateway.sent, 3)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *delays)
}

func TestSendRecoversAfterUnavailable(t *testing.T) {
	gateway := readyGateway(errors.Wrap(models.ErrDeliveryUnavailable, "503"), nil)
	d, delays := newTestDispatcher(gateway, "")

	assert.Equal(t, models.OutcomeDelivered, d.Send(context.Background(), event))
	assert.Len(t, gateway.sent, 2)
	assert.Equal(t, []time.Duration{2 * time.Second}, *delays)
}

func TestSendForbiddenNoRetry(t *testing.T) {
	gateway := readyGateway(errors.Wrap(models.ErrDeliveryForbidden, "403"))
	d, delays := newTestDispatcher(gateway, "")

	assert.Equal(t, models.OutcomeSkippedNoPermission, d.Send(context.Background(), event))
	assert.Len(t, gateway.sent, 1)
	assert.Empty(t, *delays)
}

func TestSendUnknownErrorNoRetry(t *testing.T) {
	gateway := readyGateway(errors.New("connection reset"))
	d, delays := newTestDispatcher(gateway, "")

	assert.Equal(t, models.OutcomeFailed, d.Send(context.Background(), event))
	assert.Len(t, gateway.sent, 1)
	assert.Empty(t, *delays)
}

func TestSendShutdownDuringBackoff(t *testing.T) {
	gateway := readyGateway(errors.Wrap(models.ErrDeliveryUnavailable, "503"))
	d := NewDispatcher(gateway, "123", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, models.OutcomeAbandonedAfterRetries, d.Send(ctx, event))
	assert.Len(t, gateway.sent, 1)
}
