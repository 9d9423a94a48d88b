package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/blacks1k-sc/ParcelVision/internal/domain"
	"github.com/blacks1k-sc/ParcelVision/mocks"
)

func TestExtractRemoteWinsOverLocal(t *testing.T) {
	remote := new(mocks.MockVisionExtractor)
	local := new(mocks.MockFieldRecognizer)

	remote.On("Extract", mock.Anything, mock.Anything).Return(&domain.Candidate{
		Unit: "101", Name: "JANE DOE", Supplier: "UPS", ParcelType: "BROWN BOX",
	}, nil)

	e := NewExtractor(remote, local)
	record := e.Extract(context.Background(), []byte("img"), "image/jpeg")

	assert.Equal(t, "101", record.Unit)
	assert.Equal(t, "UPS", record.Supplier)
	// Complete remote result means the local strategy never runs.
	local.AssertNotCalled(t, "RecognizeFields", mock.Anything, mock.Anything)
}

func TestExtractBackfillsMissingFields(t *testing.T) {
	remote := new(mocks.MockVisionExtractor)
	local := new(mocks.MockFieldRecognizer)

	remote.On("Extract", mock.Anything, mock.Anything).Return(&domain.Candidate{
		Unit: "101", Name: "UNKNOWN", Supplier: "UPS", ParcelType: "BROWN BOX",
	}, nil)
	local.On("RecognizeFields", mock.Anything, mock.Anything).Return(&domain.Candidate{
		Unit: "202", Name: "JANE DOE", Supplier: "FEDEX", ParcelType: "WHITE PACKAGE",
	})

	e := NewExtractor(remote, local)
	record := e.Extract(context.Background(), []byte("img"), "image/jpeg")

	// Only the missing name is backfilled; present remote fields stay.
	assert.Equal(t, "101", record.Unit)
	assert.Equal(t, "Jane Doe", record.Name)
	assert.Equal(t, "UPS", record.Supplier)
	assert.Equal(t, "BROWN BOX", record.ParcelType)
}

func TestExtractFallsBackWhenRemoteFails(t *testing.T) {
	remote := new(mocks.MockVisionExtractor)
	local := new(mocks.MockFieldRecognizer)

	remote.On("Extract", mock.Anything, mock.Anything).
		Return(nil, errors.New("api unreachable"))
	local.On("RecognizeFields", mock.Anything, mock.Anything).Return(&domain.Candidate{
		Unit: "604", Name: "JANE DOE", Supplier: "UPS", ParcelType: "BROWN BOX",
	})

	e := NewExtractor(remote, local)
	record := e.Extract(context.Background(), []byte("img"), "image/jpeg")

	assert.Equal(t, "604", record.Unit)
	assert.Equal(t, "Jane Doe", record.Name)
	assert.Equal(t, "UPS", record.Supplier)
	assert.Equal(t, "BROWN BOX", record.ParcelType)
}

func TestExtractLocalSentinelNeverDowngrades(t *testing.T) {
	remote := new(mocks.MockVisionExtractor)
	local := new(mocks.MockFieldRecognizer)

	remote.On("Extract", mock.Anything, mock.Anything).Return(&domain.Candidate{
		Unit: "101", Name: "JANE DOE", Supplier: "OTHER", ParcelType: "BROWN BOX",
	}, nil)
	// Local also produced nothing useful for the supplier.
	local.On("RecognizeFields", mock.Anything, mock.Anything).Return(&domain.Candidate{
		Supplier: "OTHER",
	})

	e := NewExtractor(remote, local)
	record := e.Extract(context.Background(), []byte("img"), "image/jpeg")

	assert.Equal(t, "101", record.Unit)
	assert.Equal(t, "OTHER", record.Supplier)
}

func TestExtractNeverFailsWithNoStrategies(t *testing.T) {
	e := NewExtractor(nil, nil)
	record := e.Extract(context.Background(), []byte("img"), "image/jpeg")

	assert.Equal(t, "UNKNOWN", record.Unit)
	assert.Equal(t, "UNKNOWN", record.Name)
	assert.Equal(t, "OTHER", record.Supplier)
	assert.Equal(t, "BROWN BOX", record.ParcelType)
}
