package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("QUIZ_MAX_ATTEMPTS", "")
	t.Setenv("QUIZ_PASS_PERCENT", "")
	LoadConfig()

	assert.Equal(t, "postgres", AppConfig.DBDriver)
	assert.Equal(t, 3, AppConfig.QuizMaxAttempts)
	assert.Equal(t, 0, AppConfig.QuizPassPercent)
	assert.Equal(t, "5 0 * * *", AppConfig.EnrollmentSweepCron)
}

func TestLoadConfig_RejectsOutOfRangeQuizSettings(t *testing.T) {
	t.Setenv("QUIZ_MAX_ATTEMPTS", "0")
	t.Setenv("QUIZ_PASS_PERCENT", "140")
	LoadConfig()

	assert.Equal(t, 3, AppConfig.QuizMaxAttempts)
	assert.Equal(t, 0, AppConfig.QuizPassPercent)

	t.Setenv("QUIZ_MAX_ATTEMPTS", "5")
	t.Setenv("QUIZ_PASS_PERCENT", "60")
	LoadConfig()

	assert.Equal(t, 5, AppConfig.QuizMaxAttempts)
	assert.Equal(t, 60, AppConfig.QuizPassPercent)
}

func TestGetEnvInt_FallsBackOnGarbage(t *testing.T) {
	t.Setenv("TRACKER_TEST_INT", "three")
	assert.Equal(t, 7, getEnvInt("TRACKER_TEST_INT", 7))
}
