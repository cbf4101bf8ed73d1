package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/prasetyowira/certqr/domain/certificate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a test repository
func createTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()

	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func testIssued(number, name string, issuedAt time.Time) *certificate.Issued {
	return &certificate.Issued{
		Record: certificate.Record{
			CertificateNo:   number,
			ParticipantName: name,
			IDNumber:        "92347591734",
			Course:          "Security Officer",
			CompanyName:     "DECON",
			TrainingDate:    "01 July 2024",
			ExpiryDate:      "30 June 2027",
		},
		Artifacts: certificate.Artifacts{
			HTMLPath: filepath.Join("certificates", certificate.HTMLFileName(number)),
			QRPath:   filepath.Join("certificates", certificate.QRFileName(number)),
			URL:      certificate.PublicURL("https://example.github.io/certs", number),
		},
		IssuedAt: issuedAt,
	}
}

func TestNewSQLiteRepository(t *testing.T) {
	// Act
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, repo.db)
	assert.True(t, repo.db.Migrator().HasTable(&CertificateModel{}))
	assert.NoError(t, repo.Close())
}

func TestNewSQLiteRepository_InvalidPath(t *testing.T) {
	// Act - Try to create a repository in a directory that does not exist
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "missing", "db.sqlite"))

	// Assert
	assert.Error(t, err)
	assert.Nil(t, repo)
}

func TestSQLiteRepository_SaveAndFind(t *testing.T) {
	// Arrange
	repo := createTestRepository(t)
	ctx := context.Background()
	issuedAt := time.Date(2024, 7, 1, 9, 30, 0, 0, time.UTC)
	issued := testIssued("PK17058", "Muhammad Hasnain", issuedAt)

	// Act
	err := repo.Save(ctx, issued)
	require.NoError(t, err)
	found, err := repo.FindByNumber(ctx, "PK17058")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, issued.Record, found.Record)
	assert.Equal(t, issued.Artifacts, found.Artifacts)
	assert.True(t, issuedAt.Equal(found.IssuedAt))
}

func TestSQLiteRepository_SaveReplacesExisting(t *testing.T) {
	// Arrange
	repo := createTestRepository(t)
	ctx := context.Background()
	first := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	// Act
	require.NoError(t, repo.Save(ctx, testIssued("PK17058", "Old Name", first)))
	require.NoError(t, repo.Save(ctx, testIssued("PK17058", "New Name", second)))

	// Assert
	found, err := repo.FindByNumber(ctx, "PK17058")
	require.NoError(t, err)
	assert.Equal(t, "New Name", found.ParticipantName)
	assert.True(t, second.Equal(found.IssuedAt))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSQLiteRepository_FindByNumber_NotFound(t *testing.T) {
	repo := createTestRepository(t)

	found, err := repo.FindByNumber(context.Background(), "NOPE")

	assert.Nil(t, found)
	assert.ErrorIs(t, err, certificate.ErrNotFound)
}

func TestSQLiteRepository_List_NewestFirst(t *testing.T) {
	// Arrange
	repo := createTestRepository(t)
	ctx := context.Background()
	base := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, testIssued("A1", "First", base)))
	require.NoError(t, repo.Save(ctx, testIssued("B2", "Second", base.Add(2*time.Hour))))
	require.NoError(t, repo.Save(ctx, testIssued("C3", "Third", base.Add(time.Hour))))

	// Act
	all, err := repo.List(ctx)

	// Assert
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "B2", all[0].CertificateNo)
	assert.Equal(t, "C3", all[1].CertificateNo)
	assert.Equal(t, "A1", all[2].CertificateNo)
}

func TestSQLiteRepository_List_Empty(t *testing.T) {
	repo := createTestRepository(t)

	all, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, all)
}
