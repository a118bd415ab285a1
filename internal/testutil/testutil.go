package testutil

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"testing"

	migration "foodgram-backend/cmd/database/migrate"
	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/internal/utils/storage"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// SetupTestDB opens an in-memory SQLite database private to t with the full
// schema migrated.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", unsafeName.ReplaceAllString(t.Name(), "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := migration.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

const TestPassword = "s3cret-pass"

func CreateUser(t *testing.T, db *gorm.DB, username string) *entities.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := &entities.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  string(hash),
		FirstName: "First " + username,
		LastName:  "Last " + username,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

func CreateTag(t *testing.T, db *gorm.DB, slug string) *entities.Tag {
	t.Helper()

	tag := &entities.Tag{Name: slug, Color: "#E26C2D", Slug: slug}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("Failed to create tag: %v", err)
	}
	return tag
}

func CreateIngredient(t *testing.T, db *gorm.DB, name, unit string) *entities.Ingredient {
	t.Helper()

	ingredient := &entities.Ingredient{Name: name, MeasurementUnit: unit}
	if err := db.Create(ingredient).Error; err != nil {
		t.Fatalf("Failed to create ingredient: %v", err)
	}
	return ingredient
}

// CreateRecipe inserts a recipe directly, bypassing the service layer.
// amounts maps ingredient id to amount.
func CreateRecipe(t *testing.T, db *gorm.DB, author *entities.User, name string, tags []*entities.Tag, amounts map[uuid.UUID]int) *entities.Recipe {
	t.Helper()

	recipe := &entities.Recipe{
		AuthorID:    author.ID,
		Name:        name,
		Image:       "https://cdn.example.com/recipes/" + name + ".png",
		Text:        "Cook " + name,
		CookingTime: 10,
	}
	for _, tag := range tags {
		recipe.RecipeTags = append(recipe.RecipeTags, &entities.RecipeTag{TagID: tag.ID})
	}
	for id, amount := range amounts {
		recipe.RecipeIngredients = append(recipe.RecipeIngredients, &entities.RecipeIngredient{IngredientID: id, Amount: amount})
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("Failed to create recipe: %v", err)
	}
	return recipe
}

// FakeStorage keeps uploaded objects in memory.
type FakeStorage struct {
	mu        sync.Mutex
	Objects   map[string][]byte
	UploadErr error
}

var _ storage.AwsS3 = (*FakeStorage)(nil)

const FakeBaseURL = "https://fake-bucket.local"

func NewFakeStorage() *FakeStorage {
	return &FakeStorage{Objects: map[string][]byte{}}
}

func (f *FakeStorage) UploadFile(_ context.Context, fileName string, image domain.ImageUpload, folder string, _ ...string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.UploadErr != nil {
		return "", f.UploadErr
	}
	key := storage.ObjectKey(folder, fileName, image.Extension)
	f.Objects[key] = image.Data
	return key, nil
}

func (f *FakeStorage) DeleteFile(_ context.Context, objectKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.Objects, objectKey)
	return nil
}

func (f *FakeStorage) GetPublicLinkKey(objectKey string) string {
	return storage.PublicLink(FakeBaseURL, objectKey)
}

func (f *FakeStorage) GetObjectKeyFromLink(link string) string {
	return storage.ObjectKeyFromLink(FakeBaseURL, link)
}

func (f *FakeStorage) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Objects)
}

// PNG is a valid 1x1 image for upload tests.
var PNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func PNGImage() domain.ImageUpload {
	return domain.ImageUpload{Data: PNG, ContentType: "image/png", Extension: "png"}
}
