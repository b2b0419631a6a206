package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewRideRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewRideRepository(pool)
	assert.NotNil(t, repo)
}

func TestNewBookingRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewBookingRepository(pool)
	assert.NotNil(t, repo)
}

func TestNewUserRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewUserRepository(pool)
	assert.NotNil(t, repo)
}

func TestNewPointsRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewPointsRepository(pool)
	assert.NotNil(t, repo)
}
