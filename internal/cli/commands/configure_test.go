package commands

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/auroraeye/internal/config"
	"github.com/auroraeye/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGeo struct {
	coords map[string][2]float64
	err    error
}

func (f *fakeGeo) Resolve(_ context.Context, city, _ string) (float64, float64, error) {
	if f.err != nil {
		return 0, 0, f.err
	}
	c, ok := f.coords[city]
	if !ok {
		return 0, 0, errors.New("location not found")
	}
	return c[0], c[1], nil
}

func scripted(lines ...string) *prompter {
	return newPrompter(strings.NewReader(strings.Join(lines, "\n")+"\n"), &bytes.Buffer{})
}

func tempStore(t *testing.T) *config.Store {
	t.Helper()
	return config.NewStore(filepath.Join(t.TempDir(), "config.json"))
}

func TestRunConfigure_FirstRunCompleteSetup(t *testing.T) {
	store := tempStore(t)
	geo := &fakeGeo{coords: map[string][2]float64{"Tromsø": {69.6496, 18.9553}}}

	// One location, two recipients, MODERATE threshold, skip SMTP.
	p := scripted(
		"Tromsø", "Norway",
		"n",
		"me@example.com, you@example.com",
		"2",
		"n",
	)

	require.NoError(t, runConfigure(p, store, geo))

	cfg, err := store.Load()
	require.NoError(t, err)
	require.Len(t, cfg.Locations, 1)
	assert.Equal(t, "Tromsø", cfg.Locations[0].City)
	assert.Equal(t, 69.6496, cfg.Locations[0].Latitude)
	assert.Equal(t, []string{"me@example.com", "you@example.com"}, cfg.Emails)
	assert.Equal(t, models.ThresholdModerate, cfg.Threshold)
}

func TestRunConfigure_InvalidEmailReprompts(t *testing.T) {
	store := tempStore(t)
	geo := &fakeGeo{coords: map[string][2]float64{"Kiruna": {67.8558, 20.2253}}}

	// The invalid address is rejected and the prompt repeats; the empty
	// threshold reply keeps the HIGH default.
	p := scripted(
		"Kiruna", "Sweden",
		"n",
		"not-an-email",
		"ok@example.com",
		"",
		"n",
	)

	require.NoError(t, runConfigure(p, store, geo))

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"ok@example.com"}, cfg.Emails)
	assert.Equal(t, models.ThresholdHigh, cfg.Threshold)
}

func TestRunConfigure_GeocodeFailureReprompts(t *testing.T) {
	store := tempStore(t)
	geo := &fakeGeo{coords: map[string][2]float64{"Tromsø": {69.6496, 18.9553}}}

	// The first lookup fails and nothing is added; the loop asks again.
	p := scripted(
		"Atlantis", "Ocean",
		"Tromsø", "Norway",
		"n",
		"me@example.com",
		"1",
		"n",
	)

	require.NoError(t, runConfigure(p, store, geo))

	cfg, err := store.Load()
	require.NoError(t, err)
	require.Len(t, cfg.Locations, 1)
	assert.Equal(t, "Tromsø", cfg.Locations[0].City)
}

func seedConfig(t *testing.T, store *config.Store) *config.Config {
	t.Helper()
	cfg := &config.Config{
		Locations: []models.Location{{City: "Tromsø", Country: "Norway", Latitude: 69.6496, Longitude: 18.9553}},
		Emails:    []string{"me@example.com"},
		Threshold: models.ThresholdHigh,
	}
	require.NoError(t, store.Save(cfg))
	return cfg
}

func TestRunConfigure_MenuUpdatesThreshold(t *testing.T) {
	store := tempStore(t)
	seedConfig(t, store)

	p := scripted("3", "3") // menu: threshold, pick ALL
	require.NoError(t, runConfigure(p, store, &fakeGeo{}))

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, models.ThresholdAll, cfg.Threshold)
}

func TestRunConfigure_MenuExit(t *testing.T) {
	store := tempStore(t)
	before := seedConfig(t, store)

	p := scripted("6")
	require.NoError(t, runConfigure(p, store, &fakeGeo{}))

	after, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestManageLocations_AddRemove(t *testing.T) {
	store := tempStore(t)
	cfg := seedConfig(t, store)
	geo := &fakeGeo{coords: map[string][2]float64{"Kiruna": {67.8558, 20.2253}}}

	// Add Kiruna, remove the seeded Tromsø entry, save.
	p := scripted(
		"a", "Kiruna", "Sweden",
		"r", "1",
		"d",
	)
	require.NoError(t, manageLocations(p, store, geo, cfg))

	saved, err := store.Load()
	require.NoError(t, err)
	require.Len(t, saved.Locations, 1)
	assert.Equal(t, "Kiruna", saved.Locations[0].City)
}

func TestManageLocations_RejectsDuplicateCoordinates(t *testing.T) {
	store := tempStore(t)
	cfg := seedConfig(t, store)
	// Same coordinates as the seeded Tromsø entry.
	geo := &fakeGeo{coords: map[string][2]float64{"Tromso": {69.6496, 18.9553}}}

	p := scripted(
		"a", "Tromso", "Norway",
		"d",
	)
	require.NoError(t, manageLocations(p, store, geo, cfg))

	saved, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, saved.Locations, 1)
}

func TestManageLocations_CannotSaveEmpty(t *testing.T) {
	store := tempStore(t)
	cfg := seedConfig(t, store)
	geo := &fakeGeo{coords: map[string][2]float64{"Kiruna": {67.8558, 20.2253}}}

	// Removing the only location leaves nothing to save; "d" is refused
	// until a location is added.
	p := scripted(
		"r", "1",
		"d",
		"a", "Kiruna", "Sweden",
		"d",
	)
	require.NoError(t, manageLocations(p, store, geo, cfg))

	saved, err := store.Load()
	require.NoError(t, err)
	require.Len(t, saved.Locations, 1)
	assert.Equal(t, "Kiruna", saved.Locations[0].City)
}

func TestManageEmails_InvalidInputDoesNotSave(t *testing.T) {
	store := tempStore(t)
	cfg := seedConfig(t, store)

	p := scripted("bad-address")
	require.NoError(t, manageEmails(p, store, cfg))

	saved, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"me@example.com"}, saved.Emails)
}
