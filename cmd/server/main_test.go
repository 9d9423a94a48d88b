package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blacks1k-sc/ParcelVision/internal/config"
	"github.com/blacks1k-sc/ParcelVision/internal/domain"
)

func TestBuildVisionExtractorMissingKeyAbortsStartup(t *testing.T) {
	_, err := buildVisionExtractor(&config.VisionConfig{Provider: "gemini"})
	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
}

func TestBuildVisionExtractorGemini(t *testing.T) {
	ext, err := buildVisionExtractor(&config.VisionConfig{Provider: "gemini", APIKey: "test-key"})
	require.NoError(t, err)
	assert.NotNil(t, ext)
}

func TestBuildVisionExtractorDisabledProvider(t *testing.T) {
	ext, err := buildVisionExtractor(&config.VisionConfig{Provider: "none"})
	require.NoError(t, err)
	assert.Nil(t, ext)
}

func TestBuildVisionExtractorUnknownProvider(t *testing.T) {
	_, err := buildVisionExtractor(&config.VisionConfig{Provider: "clip"})
	assert.Error(t, err)
}
