package validation

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/s4ngl/iu-icems-website-sub000/internal/common"
	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
	"github.com/s4ngl/iu-icems-website-sub000/internal/models/dtos"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	// Report failures under the json field name the client actually sent.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
}

// Struct runs the validate tags on a request DTO and folds the failures
// into a field→message map (nil when everything passes).
func Struct(s any) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	var vErrs validator.ValidationErrors
	if ok := asValidationErrors(err, &vErrs); !ok {
		fields["_"] = err.Error()
		return fields
	}

	for _, fe := range vErrs {
		fields[strings.ToLower(fe.Field())] = messageFor(fe)
	}
	return fields
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	vErrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = vErrs
	}
	return ok
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "uuid":
		return "must be a valid identifier"
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}

// ParseClock parses an HH:MM 24-hour string into minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	hh, err := strconv.Atoi(parts[0])
	if err != nil || hh < 0 || hh > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	mm, err := strconv.Atoi(parts[1])
	if err != nil || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hh*60 + mm, nil
}

// timeWindow checks HH:MM shape and start<end ordering for an event or
// training session.
func timeWindow(fields map[string]string, start, end string) {
	startMin, startErr := ParseClock(start)
	if startErr != nil {
		fields["start_time"] = "must be a time in HH:MM 24-hour format"
	}
	endMin, endErr := ParseClock(end)
	if endErr != nil {
		fields["end_time"] = "must be a time in HH:MM 24-hour format"
	}
	if startErr == nil && endErr == nil && endMin <= startMin {
		fields["end_time"] = "must be after start_time"
	}
}

func dateNotPast(fields map[string]string, field, date string, now time.Time) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		// already reported by the datetime tag
		return
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if d.Before(today) {
		fields[field] = "must not be in the past"
	}
}

// CreateEvent validates a new event record.
func CreateEvent(req *dtos.CreateEventReq, now time.Time) error {
	fields := Struct(req)
	if fields == nil {
		fields = make(map[string]string)
	}
	timeWindow(fields, req.StartTime, req.EndTime)
	if _, ok := fields["event_date"]; !ok && req.EventDate != "" {
		dateNotPast(fields, "event_date", req.EventDate, now)
	}
	if len(fields) > 0 {
		return common.NewValidationError(fields)
	}
	return nil
}

// UpdateEvent validates an event patch against the record it will produce.
func UpdateEvent(req *dtos.UpdateEventReq, currentStart, currentEnd string, now time.Time) error {
	fields := Struct(req)
	if fields == nil {
		fields = make(map[string]string)
	}
	start := currentStart
	if req.StartTime != nil {
		start = *req.StartTime
	}
	end := currentEnd
	if req.EndTime != nil {
		end = *req.EndTime
	}
	timeWindow(fields, start, end)
	if req.EventDate != nil {
		if _, ok := fields["event_date"]; !ok {
			dateNotPast(fields, "event_date", *req.EventDate, now)
		}
	}
	if len(fields) > 0 {
		return common.NewValidationError(fields)
	}
	return nil
}

// CreateTraining validates a new training session, including the AHA price
// tiers when the session is flagged as AHA.
func CreateTraining(req *dtos.CreateTrainingReq, now time.Time) error {
	fields := Struct(req)
	if fields == nil {
		fields = make(map[string]string)
	}
	timeWindow(fields, req.StartTime, req.EndTime)
	if _, ok := fields["session_date"]; !ok && req.SessionDate != "" {
		dateNotPast(fields, "session_date", req.SessionDate, now)
	}
	if req.IsAHATraining {
		if req.CPRCost == nil {
			fields["cpr_cost"] = "is required for AHA training"
		}
		if req.FACost == nil {
			fields["fa_cost"] = "is required for AHA training"
		}
		if req.BothCost == nil {
			fields["both_cost"] = "is required for AHA training"
		}
	}
	if len(fields) > 0 {
		return common.NewValidationError(fields)
	}
	return nil
}

// PositionType checks a requested staffing position.
func PositionType(raw string) (constants.PositionType, error) {
	p := constants.PositionType(raw)
	if !p.IsValid() {
		return "", common.FieldError("position_type", "must be one of supervisor, emt, fa_emr")
	}
	return p, nil
}

// TrainingSignupType checks a requested price tier.
func TrainingSignupType(raw string) (constants.TrainingSignupType, error) {
	t := constants.TrainingSignupType(raw)
	if !t.IsValid() {
		return "", common.FieldError("signup_type", "must be one of cpr_only, fa_only, both")
	}
	return t, nil
}

// CertificationType checks an uploaded qualification type.
func CertificationType(raw string) (constants.CertificationType, error) {
	c := constants.CertificationType(raw)
	if !c.IsValid() {
		return "", common.FieldError("cert_type", "unknown certification type")
	}
	return c, nil
}

// AssignPenalty validates a penalty assignment.
func AssignPenalty(req *dtos.AssignPenaltyReq) error {
	if fields := Struct(req); fields != nil {
		return common.NewValidationError(fields)
	}
	return nil
}

// UpdateMember validates a board member-management patch.
func UpdateMember(req *dtos.UpdateMemberReq) error {
	fields := Struct(req)
	if fields == nil {
		fields = make(map[string]string)
	}
	if req.Role != nil && !constants.MemberRole(*req.Role).IsValid() {
		fields["role"] = "unknown role"
	}
	if req.AccountStatus != nil && !constants.AccountStatus(*req.AccountStatus).IsValid() {
		fields["account_status"] = "unknown account status"
	}
	if len(fields) > 0 {
		return common.NewValidationError(fields)
	}
	return nil
}
