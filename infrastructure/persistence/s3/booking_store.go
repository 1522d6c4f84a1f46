package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"travel-assistant/domain/travel"
	apperrors "travel-assistant/pkg/errors"
)

// BookingPrefix is the key prefix every booking document is stored under
const BookingPrefix = "bookings/"

// API is the subset of the S3 client used by the booking store
type API interface {
	s3.ListObjectsV2APIClient
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// BookingStore implements ports.BookingStore with one JSON document per booking
type BookingStore struct {
	client API
	bucket string
	logger *zap.Logger
}

// NewBookingStore creates a new S3 booking store
func NewBookingStore(client API, bucket string, logger *zap.Logger) *BookingStore {
	return &BookingStore{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// BookingKey returns the object key for a booking ID
func BookingKey(bookingID string) string {
	return BookingPrefix + bookingID + ".json"
}

// Save writes the booking to bookings/<id>.json
func (s *BookingStore) Save(ctx context.Context, booking travel.Booking) error {
	body, err := json.Marshal(booking)
	if err != nil {
		return apperrors.NewStorageError("marshal booking", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(BookingKey(booking.BookingID)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return apperrors.NewStorageError("put "+BookingKey(booking.BookingID), err)
	}

	s.logger.Debug("Booking stored",
		zap.String("booking_id", booking.BookingID),
		zap.String("bucket", s.bucket),
	)
	return nil
}

// Get loads a single booking
func (s *BookingStore) Get(ctx context.Context, bookingID string) (*travel.Booking, error) {
	return s.read(ctx, BookingKey(bookingID))
}

// ListByUser scans every stored booking and keeps those whose user_info.id
// matches. Unreadable documents are skipped.
func (s *BookingStore) ListByUser(ctx context.Context, userID string) ([]travel.Booking, error) {
	bookings := make([]travel.Booking, 0)

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(BookingPrefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, apperrors.NewStorageError("list "+BookingPrefix, err)
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if !strings.HasSuffix(key, ".json") {
				continue
			}

			booking, err := s.read(ctx, key)
			if err != nil {
				s.logger.Warn("Skipping unreadable booking", zap.String("key", key), zap.Error(err))
				continue
			}
			if booking.BelongsTo(userID) {
				bookings = append(bookings, *booking)
			}
		}
	}

	return bookings, nil
}

func (s *BookingStore) read(ctx context.Context, key string) (*travel.Booking, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, apperrors.NewNotFoundError("booking not found").
				WithDetails(map[string]interface{}{"key": key})
		}
		return nil, apperrors.NewStorageError("get "+key, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, apperrors.NewStorageError("read "+key, err)
	}

	var booking travel.Booking
	if err := json.Unmarshal(data, &booking); err != nil {
		return nil, apperrors.NewStorageError("decode "+key, err)
	}
	return &booking, nil
}

func isNoSuchKey(err error) bool {
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey"
}
