package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zomato-etl/config"
)

func TestApplyFlagsNormalisesCase(t *testing.T) {
	cmd := &cobra.Command{Use: "run"}
	cmd.Flags().StringVar(&flagProvider, "provider", "", "")
	cmd.Flags().StringVar(&flagNotFound, "on-not-found", "", "")
	cmd.Flags().StringVar(&flagOutput, "output", "", "")
	require.NoError(t, cmd.Flags().Set("provider", "Google"))
	require.NoError(t, cmd.Flags().Set("on-not-found", "ABORT"))

	c := &config.Config{
		SourceFiles:      []string{"a.csv"},
		OutputPath:       "out.csv",
		GeocoderProvider: config.ProviderBing,
		GoogleAPIKey:     "g-key",
		NotFoundPolicy:   config.PolicyContinue,
		GeocodeRPS:       1,
	}
	applyFlags(cmd, c)

	assert.Equal(t, config.ProviderGoogle, c.GeocoderProvider)
	assert.Equal(t, config.PolicyAbort, c.NotFoundPolicy)
	assert.Equal(t, "out.csv", c.OutputPath)
	assert.NoError(t, c.Validate())
}
