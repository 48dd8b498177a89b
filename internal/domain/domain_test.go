package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		role string
		want RoleClass
	}{
		{role: "DPS", want: RoleClassDPS},
		{role: " damage dealer ", want: RoleClassDPS},
		{role: "Healer", want: RoleClassSupport},
		{role: "supporter", want: RoleClassSupport},
		{role: "Controller", want: RoleClassTank},
		{role: "tank", want: RoleClassTank},
		{role: "Assassin", want: RoleClassOther},
		{role: "", want: RoleClassOther},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeRole(tt.role))
		})
	}
}

func TestParseSpendProfile(t *testing.T) {
	tests := []struct {
		input string
		want  SpendProfile
		ok    bool
	}{
		{input: "Whale", want: SpendWhale, ok: true},
		{input: "low spender", want: SpendLowSpender, ok: true},
		{input: "LowSpender", want: SpendLowSpender, ok: true},
		{input: "free-to-play", want: SpendF2P, ok: true},
		{input: "F2P", want: SpendF2P, ok: true},
		{input: "dolphin", want: SpendF2P, ok: false},
		{input: "", want: SpendF2P, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseSpendProfile(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestUserData_SpendProfileDefaults(t *testing.T) {
	var nilData *UserData
	assert.Equal(t, SpendF2P, nilData.SpendProfile())
	assert.Equal(t, SpendF2P, (&UserData{}).SpendProfile())
	assert.Equal(t, SpendF2P, (&UserData{ProgressModel: ProgressModel{SpendProfile: "Dolphin"}}).SpendProfile())
	assert.Equal(t, SpendWhale, (&UserData{ProgressModel: ProgressModel{SpendProfile: SpendWhale}}).SpendProfile())
}

func TestUserData_Validate(t *testing.T) {
	tests := []struct {
		name    string
		data    UserData
		wantErr error
	}{
		{name: "empty", data: NewUserData()},
		{
			name: "five heroes with empty slots",
			data: UserData{Queues: []Queue{{HeroIDs: []string{"a", "", "c", "", "e"}}}},
		},
		{
			name:    "six heroes",
			data:    UserData{Queues: []Queue{{HeroIDs: []string{"a", "b", "c", "d", "e", "f"}}}},
			wantErr: ErrTooManyHeroes,
		},
		{
			name:    "unknown relic slot",
			data:    UserData{Queues: []Queue{{Relics: map[RelicSlotType]RelicSlot{"Utility": {RelicID: "x"}}}}},
			wantErr: ErrInvalidRelicSlot,
		},
		{
			name:    "unknown faction",
			data:    UserData{Settings: Settings{MainFaction: "Pirates"}},
			wantErr: ErrInvalidFaction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.data.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUserData_FindHero(t *testing.T) {
	data := &UserData{Roster: []OwnedHero{NewOwnedHero(Hero{ID: "a"}), NewOwnedHero(Hero{ID: "b"})}}

	hero, ok := data.FindHero("b")
	require.True(t, ok)
	hero.Level = 50
	assert.Equal(t, 50, data.Roster[1].Level, "FindHero returns a pointer into the roster")

	_, ok = data.FindHero("z")
	assert.False(t, ok)

	var nilData *UserData
	_, ok = nilData.FindHero("a")
	assert.False(t, ok)
}

func TestQueue_AssignedHeroes(t *testing.T) {
	q := Queue{HeroIDs: []string{"", "a", "", "b"}}
	assert.Equal(t, []string{"a", "b"}, q.AssignedHeroes())
	assert.Empty(t, (&Queue{}).AssignedHeroes())
}

func TestUserData_JSONShape(t *testing.T) {
	data := UserData{
		Roster: []OwnedHero{{Hero: Hero{ID: "sylvara", Faction: FactionNature}, Level: 10, Owned: true}},
		Queues: []Queue{{ID: "q1", HeroIDs: []string{"sylvara", ""}}},
	}

	raw, err := json.Marshal(data)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	roster := decoded["roster"].([]any)
	hero := roster[0].(map[string]any)
	assert.Equal(t, "sylvara", hero["id"], "catalog fields are flattened into roster entries")
	assert.Equal(t, float64(10), hero["level"])

	queue := decoded["queues"].([]any)[0].(map[string]any)
	assert.Equal(t, []any{"sylvara", ""}, queue["heroes"])
}

func TestGameEvent_Schedule(t *testing.T) {
	event := GameEvent{Phases: []EventPhase{{Name: "One"}}}

	_, ok := event.Schedule()
	assert.False(t, ok)
	assert.Equal(t, "One", event.PhaseName(0))
	assert.Empty(t, event.PhaseName(1))
	assert.Empty(t, event.PhaseName(-1))

	rule := datatypes.NewJSONType(ScheduleRule{Kind: RuleManual})
	event.Rule = &rule
	got, ok := event.Schedule()
	require.True(t, ok)
	assert.Equal(t, RuleManual, got.Kind)
}
