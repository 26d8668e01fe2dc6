package services

import (
	"context"
	"testing"

	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfileEmpty(t *testing.T) {
	f := newFixture(t)
	svc := NewProfileService(f.db)
	user := mustCreateUser(t, f.db, "frank", "candidate", true)

	profile, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Zero(t, profile.ID)
	assert.Equal(t, "frank", profile.User.Username)
	assert.Empty(t, profile.Tags)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewProfileService(f.db)
	user := mustCreateUser(t, f.db, "frank", "candidate", true)

	in := dtos.ProfileUpdateInput{
		Phone:             "+48123456789",
		Age:               30,
		WorkExperience:    5,
		MinSalary:         uintPtr(2000),
		Country:           "Poland",
		City:              "krakow",
		Level:             "Middle",
		Tags:              "go rust",
		EmploymentFormats: []string{"B2B"},
		WorkFormats:       []string{"Remote work"},
	}
	profile, err := svc.UpdateProfile(ctx, user.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "+48123456789", profile.Phone)
	require.NotNil(t, profile.City)
	assert.Equal(t, "Krakow", profile.City.Name)
	assert.Equal(t, "Poland", profile.City.Country.Name)
	require.NotNil(t, profile.Level)
	assert.Equal(t, "Middle", profile.Level.Name)
	assert.Len(t, profile.Tags, 2)

	in.Tags = "python"
	in.City = ""
	in.Level = ""
	in.WorkFormats = nil
	profile, err = svc.UpdateProfile(ctx, user.ID, in)
	require.NoError(t, err)
	assert.Nil(t, profile.City)
	assert.Nil(t, profile.Level)
	require.Len(t, profile.Tags, 1)
	assert.Equal(t, "python", profile.Tags[0].Name)
	assert.Empty(t, profile.WorkFormats)

	assert.EqualValues(t, 1, countRows(t, f.db, &models.Profile{}))
}

func TestUpdateProfileUnknownLevel(t *testing.T) {
	f := newFixture(t)
	svc := NewProfileService(f.db)
	user := mustCreateUser(t, f.db, "frank", "candidate", true)

	_, err := svc.UpdateProfile(context.Background(), user.ID, dtos.ProfileUpdateInput{Level: "Wizard", Tags: "magic"})
	require.ErrorIs(t, err, ErrLevelNotExists)
	assert.Zero(t, countRows(t, f.db, &models.Profile{}))
	assert.Zero(t, countRows(t, f.db, &models.Tag{}))
}

func TestProfileOfRemovedUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewProfileService(f.db)
	user := mustCreateUser(t, f.db, "ghost", "candidate", false)
	require.NoError(t, f.db.Delete(&user).Error)

	_, err := svc.GetProfile(ctx, user.ID)
	assert.ErrorIs(t, err, ErrUserNotExists)

	_, err = svc.UpdateProfile(ctx, user.ID, dtos.ProfileUpdateInput{Tags: "go"})
	assert.ErrorIs(t, err, ErrUserNotExists)
	assert.Zero(t, countRows(t, f.db, &models.Profile{}))
	assert.Zero(t, countRows(t, f.db, &models.Tag{}))
}
