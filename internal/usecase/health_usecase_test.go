package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-portfolio-forms/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("unreachable") }

	status, ok := usecase.NewHealthUsecase(map[string]usecase.Pinger{
		"database": up,
		"redis":    nil,
	}).Check(context.Background())
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"status": "ok", "database": "up", "redis": "disabled"}, status)

	status, ok = usecase.NewHealthUsecase(map[string]usecase.Pinger{
		"database": down,
	}).Check(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "degraded", status["status"])
	assert.Equal(t, "down", status["database"])
}
