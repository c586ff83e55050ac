package validation

import (
	"testing"
	"time"

	"github.com/s4ngl/iu-icems-website-sub000/internal/common"
	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
	"github.com/s4ngl/iu-icems-website-sub000/internal/models/dtos"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		minutes int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:30", 510, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"12", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.minutes, got, "input %q", tt.input)
	}
}

func validCreateEvent() *dtos.CreateEventReq {
	return &dtos.CreateEventReq{
		Title:     "Football Game",
		EventDate: time.Now().Add(7 * 24 * time.Hour).Format("2006-01-02"),
		StartTime: "08:00",
		EndTime:   "16:00",
		Location:  "Memorial Stadium",
		EMTNeeded: 4,
	}
}

func TestCreateEvent_Valid(t *testing.T) {
	assert.NoError(t, CreateEvent(validCreateEvent(), time.Now()))
}

func TestCreateEvent_EndBeforeStart(t *testing.T) {
	req := validCreateEvent()
	req.StartTime = "16:00"
	req.EndTime = "08:00"

	err := CreateEvent(req, time.Now())
	var vErr *common.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "end_time")
}

func TestCreateEvent_PastDate(t *testing.T) {
	req := validCreateEvent()
	req.EventDate = time.Now().Add(-48 * time.Hour).Format("2006-01-02")

	err := CreateEvent(req, time.Now())
	var vErr *common.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "event_date")
}

func TestCreateEvent_MissingRequired(t *testing.T) {
	err := CreateEvent(&dtos.CreateEventReq{}, time.Now())
	var vErr *common.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "title")
	assert.Contains(t, vErr.Fields, "location")
}

func TestUpdateEvent_WindowAgainstCurrentValues(t *testing.T) {
	// Patching only the end time must still respect the stored start time
	end := "07:00"
	err := UpdateEvent(&dtos.UpdateEventReq{EndTime: &end}, "08:00", "16:00", time.Now())
	var vErr *common.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "end_time")

	end = "18:00"
	assert.NoError(t, UpdateEvent(&dtos.UpdateEventReq{EndTime: &end}, "08:00", "16:00", time.Now()))
}

func TestPositionType(t *testing.T) {
	for _, raw := range []string{"supervisor", "emt", "fa_emr"} {
		got, err := PositionType(raw)
		require.NoError(t, err)
		assert.Equal(t, constants.PositionType(raw), got)
	}

	_, err := PositionType("paramedic")
	assert.Error(t, err)
}

func TestTrainingSignupType(t *testing.T) {
	got, err := TrainingSignupType("cpr_only")
	require.NoError(t, err)
	assert.Equal(t, constants.TrainingCPROnly, got)

	_, err = TrainingSignupType("acls")
	assert.Error(t, err)
}
