package twitch_client

import (
	"context"
	"net/url"

	"twitch_discord_bot/internal/metrics"
	"twitch_discord_bot/internal/models"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// GetActiveStreamInfoByUsers returns the live streams of at most 100 users.
func (twc *TwitchClient) GetActiveStreamInfoByUsers(ctx context.Context, ids []string) (data *models.Streams, err error) {

	query := url.Values{}
	for _, id := range ids {
		if digitCheck.MatchString(id) {
			query.Add("user_id", id)
			continue
		}
		query.Add("user_login", id)
	}
	query.Set("first", "100")

	var streamsInfo models.Streams
	err = twc.get(ctx, "/helix/streams", query, &streamsInfo)
	if err != nil {
		return nil, err
	}

	data = &streamsInfo

	return
}

// FetchLive fetches live streams for every id in batches of 100.
// A failed batch is logged and left out of the result; the others are unaffected.
func (twc *TwitchClient) FetchLive(ctx context.Context, ids []string) *models.LiveFetchResult {
	batches := chunk(ids, models.HelixBatchSize)

	records := make([][]models.StreamRecord, len(batches))
	failures := make([]error, len(batches))

	var g errgroup.Group
	g.SetLimit(fetchConcurrency)

	for i, batch := range batches {
		i, batch := i, batch
		g.Go(func() error {
			streams, err := twc.GetActiveStreamInfoByUsers(ctx, batch)
			if err != nil {
				failures[i] = err
				return nil
			}

			records[i] = toRecords(streams)
			return nil
		})
	}

	_ = g.Wait()

	result := &models.LiveFetchResult{Batches: len(batches)}

	for i, batch := range batches {
		if err := failures[i]; err != nil {
			logrus.WithFields(logrus.Fields{
				"batch": i + 1,
				"size":  len(batch),
			}).Errorf("twitch streams fetch error: %v", err)
			metrics.Inc(metrics.FetchBatchFailures)

			result.FailedBatches++
			result.FailedIDs = append(result.FailedIDs, batch...)
			if errors.Is(err, models.ErrUnauthorized) {
				result.Unauthorized = true
			}
			continue
		}

		result.Records = append(result.Records, records[i]...)
	}

	return result
}

func toRecords(streams *models.Streams) []models.StreamRecord {
	if streams == nil {
		return nil
	}

	records := make([]models.StreamRecord, 0, len(streams.StreamInfo))
	for _, stream := range streams.StreamInfo {
		record, ok := stream.ToRecord()
		if !ok {
			logrus.Warnf("skipping stream %s without user_login", stream.StreamId)
			continue
		}
		records = append(records, record)
	}

	return records
}
