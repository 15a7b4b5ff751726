package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	name  string
	count int
}

func TestApply_InOrder(t *testing.T) {
	cfg := &testConfig{}

	err := Apply(cfg,
		NoError(func(c *testConfig) { c.name = "first" }),
		NoError(func(c *testConfig) { c.name = "second" }),
		New(func(c *testConfig) error {
			c.count = 42
			return nil
		}),
	)

	require.NoError(t, err)
	require.Equal(t, "second", cfg.name)
	require.Equal(t, 42, cfg.count)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	cfg := &testConfig{}
	boom := errors.New("boom")

	err := Apply(cfg,
		NoError(func(c *testConfig) { c.count = 1 }),
		New(func(c *testConfig) error { return boom }),
		NoError(func(c *testConfig) { c.count = 2 }),
	)

	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, cfg.count)
}

func TestApply_NoOptions(t *testing.T) {
	cfg := &testConfig{name: "unchanged"}
	require.NoError(t, Apply(cfg))
	require.Equal(t, "unchanged", cfg.name)
}
