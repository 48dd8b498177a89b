package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dom/hero-companion/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	displayName string
	password    string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		displayName: fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		password:    "testpassword123",
	}
}

// WithDisplayName sets the display name
func (b *UserBuilder) WithDisplayName(name string) *UserBuilder {
	b.displayName = name
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		DisplayName:  b.displayName,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
	} `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// BuildAndAuthenticate creates a user via API and returns the user and access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"displayName": b.displayName,
		"password":    b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.User.ID)
	user := &domain.User{
		ID:          userID,
		DisplayName: authResp.User.DisplayName,
	}

	return user, authResp.AccessToken
}

// UserDataBuilder assembles player snapshots for tests
type UserDataBuilder struct {
	data domain.UserData
}

// NewUserDataBuilder starts from an empty F2P snapshot
func NewUserDataBuilder() *UserDataBuilder {
	return &UserDataBuilder{data: domain.NewUserData()}
}

// WithHero adds a catalog hero to the roster
func (b *UserDataBuilder) WithHero(hero domain.Hero, level, stars int) *UserDataBuilder {
	owned := domain.NewOwnedHero(hero)
	owned.Level = level
	owned.Stars = stars
	b.data.Roster = append(b.data.Roster, owned)
	return b
}

// WithQueue adds a formation holding the given hero ids
func (b *UserDataBuilder) WithQueue(name string, heroIDs ...string) *UserDataBuilder {
	b.data.Queues = append(b.data.Queues, domain.Queue{
		ID:      fmt.Sprintf("q%d", len(b.data.Queues)+1),
		Name:    name,
		HeroIDs: heroIDs,
	})
	return b
}

// WithFormation adds a fully specified formation
func (b *UserDataBuilder) WithFormation(q domain.Queue) *UserDataBuilder {
	b.data.Queues = append(b.data.Queues, q)
	return b
}

// WithSpendProfile sets the spend profile
func (b *UserDataBuilder) WithSpendProfile(p domain.SpendProfile) *UserDataBuilder {
	b.data.ProgressModel.SpendProfile = p
	return b
}

// WithMainFaction sets the preferred faction
func (b *UserDataBuilder) WithMainFaction(f domain.Faction) *UserDataBuilder {
	b.data.Settings.MainFaction = f
	return b
}

// WithServerGroup sets the server group label
func (b *UserDataBuilder) WithServerGroup(group string) *UserDataBuilder {
	b.data.Settings.ServerGroup = group
	return b
}

// WithInventory sets diamonds and stamina
func (b *UserDataBuilder) WithInventory(diamonds, stamina int) *UserDataBuilder {
	b.data.Inventory.Diamonds = diamonds
	b.data.Inventory.Stamina = stamina
	return b
}

// Build returns the assembled snapshot
func (b *UserDataBuilder) Build() domain.UserData {
	return b.data
}

// SeedProfile stores a profile holding data for the user
func SeedProfile(t *testing.T, db *gorm.DB, userID uuid.UUID, data domain.UserData) *domain.Profile {
	t.Helper()

	profile := domain.NewProfile(userID)
	profile.Data = datatypes.NewJSONType(data)
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	return profile
}

// CatalogHero returns a hero from the embedded catalog by id
func CatalogHero(t *testing.T, id string) domain.Hero {
	t.Helper()

	for _, hero := range LoadBundle(t).Heroes {
		if hero.ID == id {
			return hero
		}
	}
	t.Fatalf("hero %s not in catalog", id)
	return domain.Hero{}
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}
