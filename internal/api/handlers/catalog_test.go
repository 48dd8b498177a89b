package handlers_test

import (
	"net/http"
	"testing"

	"github.com/dom/hero-companion/internal/api/handlers"
	"github.com/dom/hero-companion/internal/domain"
	"github.com/dom/hero-companion/internal/service"
	"github.com/dom/hero-companion/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeroHandler_GetAll(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedCount  int
	}{
		{name: "full catalog", query: "", expectedStatus: http.StatusOK, expectedCount: 12},
		{name: "filtered by faction", query: "?faction=Horde", expectedStatus: http.StatusOK, expectedCount: 4},
		{name: "unknown faction", query: "?faction=Pirates", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(ts.APIURL("/heroes" + tt.query))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var result handlers.HeroesResponse
			testutil.AssertJSONResponse(t, resp, &result)
			assert.Len(t, result.Heroes, tt.expectedCount)
			assert.Equal(t, "2024.06.1", result.Version)
			for _, hero := range result.Heroes {
				assert.True(t, hero.Faction.IsValid(), "hero %s", hero.ID)
			}
		})
	}
}

func TestHeroHandler_Get(t *testing.T) {
	ts := testutil.NewTestServer(t)

	t.Run("existing hero", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/heroes/sylvara"))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		testutil.AssertJSONContentType(t, resp)

		var hero domain.Hero
		testutil.AssertJSONResponse(t, resp, &hero)
		assert.Equal(t, "sylvara", hero.ID)
		assert.Equal(t, domain.FactionNature, hero.Faction)
		assert.Equal(t, domain.RarityMythic, hero.Rarity)
	})

	t.Run("unknown hero", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/heroes/nobody"))
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Hero not found")
	})
}

func TestHeroHandler_Sync(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	t.Run("requires authentication", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "POST", ts.APIURL("/catalog/sync"), nil, "")
		resp := testutil.DoRequest(t, req)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("imports the bundle", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, "POST", ts.APIURL("/catalog/sync"), nil, token)
		resp := testutil.DoRequest(t, req)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.SyncResult
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, "2024.06.1", result.Version)
		assert.Equal(t, 12, result.Heroes)
		assert.Equal(t, 6, result.Events)
	})
}

func TestEventHandler_GetAll(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp, err := http.Get(ts.APIURL("/events"))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result handlers.EventsResponse
	testutil.AssertJSONResponse(t, resp, &result)
	require.Len(t, result.Events, 6)
	assert.Equal(t, "5h 30m 0s", result.TimeUntilReset)

	// dated events first, soonest first
	assert.Equal(t, "kingdom-war", result.Events[0].ID)
	assert.Equal(t, "harvest-festival", result.Events[1].ID)
	assert.Equal(t, "23d 5h", result.Events[0].Countdown)

	byID := make(map[string]service.EventView, len(result.Events))
	for _, e := range result.Events {
		byID[e.ID] = e
	}
	armsRace := byID["arms-race"]
	assert.True(t, armsRace.State.IsActive)
	assert.Equal(t, "Hero Development", armsRace.State.ActivePhaseName)
	assert.Equal(t, "TBD", armsRace.Countdown)
	assert.False(t, byID["ancient-ruins"].State.IsActive)
}

func TestEventHandler_Get(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		id             string
		expectedStatus int
	}{
		{name: "known event", id: "arms-race", expectedStatus: http.StatusOK},
		{name: "unknown event", id: "moon-festival", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(ts.APIURL("/events/" + tt.id))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.expectedStatus == http.StatusOK {
				var view service.EventView
				testutil.AssertJSONResponse(t, resp, &view)
				assert.Equal(t, tt.id, view.ID)
				assert.Equal(t, 2, view.State.ActivePhaseIndex)
			}
		})
	}
}

func TestEventHandler_Reset(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp, err := http.Get(ts.APIURL("/events/reset"))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result handlers.ResetResponse
	testutil.AssertJSONResponse(t, resp, &result)
	assert.Equal(t, "5h 30m 0s", result.TimeUntilReset)
}
