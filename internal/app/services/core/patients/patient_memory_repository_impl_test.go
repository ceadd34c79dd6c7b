package patients

import (
	"context"
	"fmt"
	"patient-registry-service/internal/app/models"
	"patient-registry-service/internal/pkg/exceptions"
	"patient-registry-service/internal/pkg/utils"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submissionFor(name, email string) *models.ValidatedSubmission {
	return &models.ValidatedSubmission{
		Name:        name,
		Email:       email,
		Address:     "221B Baker Street",
		PhoneNumber: "+15550100",
		Password:    "s3cret!pass",
	}
}

// letterName gives every index a distinct name that passes the person name rule.
func letterName(i int) string {
	return fmt.Sprintf("Patient %c%c", 'A'+i/26, 'a'+i%26)
}

func TestPatientMemoryRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Hashes Password And Assigns Sequence", func(t *testing.T) {
		repo := NewPatientMemoryRepository()

		first, err := repo.Create(ctx, submissionFor("Jane Doe", "jane@example.com"), "patient-images/a.jpg")
		require.NoError(t, err)
		second, err := repo.Create(ctx, submissionFor("John Doe", "john@example.com"), "patient-images/b.jpg")
		require.NoError(t, err)

		assert.NotEmpty(t, first.ID)
		assert.NotEqual(t, first.ID, second.ID)
		assert.Less(t, first.Sequence, second.Sequence)
		assert.NotEqual(t, "s3cret!pass", first.PasswordHash)
		assert.True(t, utils.CheckPasswordHash("s3cret!pass", first.PasswordHash))
		assert.False(t, first.CreatedAt.IsZero())
	})

	t.Run("Duplicate Name And Email", func(t *testing.T) {
		repo := NewPatientMemoryRepository()
		_, err := repo.Create(ctx, submissionFor("Jane Doe", "jane@example.com"), "patient-images/a.jpg")
		require.NoError(t, err)

		_, err = repo.Create(ctx, submissionFor("Jane Doe", "other@example.com"), "patient-images/b.jpg")
		require.True(t, exceptions.IsKind(err, exceptions.KindDuplicateField))
		assert.Equal(t, "name", err.(*exceptions.CustomError).Field)

		_, err = repo.Create(ctx, submissionFor("Other Person", "jane@example.com"), "patient-images/c.jpg")
		require.True(t, exceptions.IsKind(err, exceptions.KindDuplicateField))
		assert.Equal(t, "email", err.(*exceptions.CustomError).Field)

		patients, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, patients, 1)
	})

	t.Run("Concurrent Identical Emails Admit Exactly One", func(t *testing.T) {
		repo := NewPatientMemoryRepository()
		const n = 50

		var (
			wg         sync.WaitGroup
			mu         sync.Mutex
			created    int
			duplicates int
		)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := repo.Create(ctx, submissionFor(letterName(i), "same@example.com"), fmt.Sprintf("patient-images/%d.jpg", i))
				mu.Lock()
				defer mu.Unlock()
				if err == nil {
					created++
				} else if exceptions.IsKind(err, exceptions.KindDuplicateField) {
					duplicates++
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 1, created)
		assert.Equal(t, n-1, duplicates)
	})

	t.Run("Cancelled Context", func(t *testing.T) {
		repo := NewPatientMemoryRepository()
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := repo.Create(cancelled, submissionFor("Jane Doe", "jane@example.com"), "patient-images/a.jpg")

		assert.True(t, exceptions.IsKind(err, exceptions.KindUnavailable))
		patients, _ := repo.List(ctx)
		assert.Empty(t, patients)
	})
}

func TestPatientMemoryRepository_Queries(t *testing.T) {
	ctx := context.Background()
	repo := NewPatientMemoryRepository()

	var ids []string
	for i := 0; i < 3; i++ {
		patient, err := repo.Create(ctx, submissionFor(letterName(i), fmt.Sprintf("p%d@example.com", i)), fmt.Sprintf("patient-images/%d.jpg", i))
		require.NoError(t, err)
		ids = append(ids, patient.ID)
	}

	t.Run("List In Creation Order", func(t *testing.T) {
		patients, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, patients, 3)
		for i, patient := range patients {
			assert.Equal(t, ids[i], patient.ID)
		}
	})

	t.Run("Get Existing And Missing", func(t *testing.T) {
		patient, err := repo.Get(ctx, ids[1])
		require.NoError(t, err)
		require.NotNil(t, patient)
		assert.Equal(t, "p1@example.com", patient.Email)

		patient, err = repo.Get(ctx, "missing")
		assert.NoError(t, err)
		assert.Nil(t, patient)
	})

	t.Run("Exists By Image Ref", func(t *testing.T) {
		exists, err := repo.ExistsByImageRef(ctx, "patient-images/2.jpg")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByImageRef(ctx, "patient-images/9.jpg")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
