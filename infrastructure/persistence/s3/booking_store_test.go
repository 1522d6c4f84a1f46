package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"travel-assistant/domain/travel"
	apperrors "travel-assistant/pkg/errors"
)

// fakeS3 keeps objects in memory and pages listings one key at a time.
type fakeS3 struct {
	objects map[string][]byte
	getErr  error
	putErr  error
	listErr error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	keys := make([]string, 0, len(f.objects))
	for k := range f.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	start := 0
	if in.ContinuationToken != nil {
		for i, k := range keys {
			if k == aws.ToString(in.ContinuationToken) {
				start = i
			}
		}
	}
	if start >= len(keys) {
		return &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}, nil
	}

	out := &s3.ListObjectsV2Output{
		Contents:    []types.Object{{Key: aws.String(keys[start])}},
		IsTruncated: aws.Bool(start+1 < len(keys)),
	}
	if start+1 < len(keys) {
		out.NextContinuationToken = aws.String(keys[start+1])
	}
	return out, nil
}

func booking(id, userID string) travel.Booking {
	return travel.Booking{
		BookingID:    id,
		BookingType:  "flight",
		UserInfo:     travel.Record{"id": userID},
		Details:      travel.Record{"flight_id": "A-1-2-economy"},
		Status:       travel.StatusConfirmed,
		Confirmation: travel.Record{"total_amount": float64(250)},
	}
}

func TestBookingStore_SaveAndGet(t *testing.T) {
	client := newFakeS3()
	store := NewBookingStore(client, "bucket", zap.NewNop())

	require.NoError(t, store.Save(context.Background(), booking("b-1", "u-1")))
	assert.Contains(t, client.objects, "bookings/b-1.json")

	got, err := store.Get(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, "b-1", got.BookingID)
	assert.Equal(t, "u-1", got.UserID())
	assert.Equal(t, 250.0, got.Confirmation.Number("total_amount"))
}

func TestBookingStore_GetMissing(t *testing.T) {
	store := NewBookingStore(newFakeS3(), "bucket", zap.NewNop())

	_, err := store.Get(context.Background(), "nope")

	assert.True(t, apperrors.IsNotFound(err))
}

func TestBookingStore_GetFailure(t *testing.T) {
	client := newFakeS3()
	client.getErr = errors.New("access denied")
	store := NewBookingStore(client, "bucket", zap.NewNop())

	_, err := store.Get(context.Background(), "b-1")

	require.Error(t, err)
	assert.False(t, apperrors.IsNotFound(err))
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeStorage))
	assert.ErrorContains(t, err, "access denied")
}

func TestBookingStore_StorageErrors(t *testing.T) {
	client := newFakeS3()
	store := NewBookingStore(client, "bucket", zap.NewNop())
	ctx := context.Background()

	client.putErr = errors.New("slow down")
	err := store.Save(ctx, booking("b-1", "u-1"))
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeStorage, appErr.Type)
	assert.Equal(t, "storage operation 'put bookings/b-1.json' failed", appErr.Message)
	assert.ErrorContains(t, err, "slow down")

	client.listErr = errors.New("no such bucket")
	_, err = store.ListByUser(ctx, "u-1")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeStorage))
	assert.ErrorContains(t, err, "no such bucket")
}

func TestBookingStore_ListByUser(t *testing.T) {
	client := newFakeS3()
	store := NewBookingStore(client, "bucket", zap.NewNop())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, booking("b-1", "u-1")))
	require.NoError(t, store.Save(ctx, booking("b-2", "u-2")))
	require.NoError(t, store.Save(ctx, booking("b-3", "u-1")))
	client.objects["bookings/broken.json"] = []byte("{not json")
	client.objects["bookings/readme.txt"] = []byte("ignored")

	got, err := store.ListByUser(ctx, "u-1")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b-1", got[0].BookingID)
	assert.Equal(t, "b-3", got[1].BookingID)

	none, err := store.ListByUser(ctx, "u-9")
	require.NoError(t, err)
	assert.Empty(t, none)
}
