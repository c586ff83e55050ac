package dtos

// Request bodies for the JSON API. Shape/range checks live in the validate
// tags; cross-field rules (start<end, date not in past) are enforced by the
// validation package.

type CreateEventReq struct {
	Title            string `json:"title" validate:"required,max=200"`
	EventDate        string `json:"event_date" validate:"required,datetime=2006-01-02"`
	StartTime        string `json:"start_time" validate:"required"`
	EndTime          string `json:"end_time" validate:"required"`
	Location         string `json:"location" validate:"required,max=200"`
	Description      string `json:"description" validate:"max=2000"`
	SupervisorNeeded int    `json:"supervisor_needed" validate:"min=0"`
	EMTNeeded        int    `json:"emt_needed" validate:"min=0"`
	FAEMRNeeded      int    `json:"fa_emr_needed" validate:"min=0"`
}

type UpdateEventReq struct {
	Title            *string `json:"title" validate:"omitempty,max=200"`
	EventDate        *string `json:"event_date" validate:"omitempty,datetime=2006-01-02"`
	StartTime        *string `json:"start_time"`
	EndTime          *string `json:"end_time"`
	Location         *string `json:"location" validate:"omitempty,max=200"`
	Description      *string `json:"description" validate:"omitempty,max=2000"`
	SupervisorNeeded *int    `json:"supervisor_needed" validate:"omitempty,min=0"`
	EMTNeeded        *int    `json:"emt_needed" validate:"omitempty,min=0"`
	FAEMRNeeded      *int    `json:"fa_emr_needed" validate:"omitempty,min=0"`
	IsFinalized      *bool   `json:"is_finalized"`
}

type EventSignupReq struct {
	PositionType string `json:"position_type" validate:"required"`
}

type AssignReq struct {
	SignupID string `json:"signup_id" validate:"required,uuid"`
}

type AutoAssignReq struct {
	PositionType string `json:"position_type" validate:"required"`
}

type ConfirmHoursReq struct {
	MemberID string  `json:"member_id" validate:"required,uuid"`
	Hours    float64 `json:"hours" validate:"min=0"`
}

type UploadCertificationReq struct {
	CertType string `json:"cert_type" validate:"required"`
	FileURL  string `json:"file_url" validate:"required,url"`
}

type ApproveCertificationReq struct {
	ExpirationDate *string `json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
}

type AssignPenaltyReq struct {
	MemberID       string  `json:"member_id" validate:"required,uuid"`
	Points         int     `json:"points" validate:"required,min=1"`
	Reason         string  `json:"reason" validate:"required,max=500"`
	AutoRemoveDate *string `json:"auto_remove_date" validate:"omitempty,datetime=2006-01-02"`
}

type CreateTrainingReq struct {
	Title         string   `json:"title" validate:"required,max=200"`
	SessionDate   string   `json:"session_date" validate:"required,datetime=2006-01-02"`
	StartTime     string   `json:"start_time" validate:"required"`
	EndTime       string   `json:"end_time" validate:"required"`
	Location      string   `json:"location" validate:"required,max=200"`
	Description   string   `json:"description" validate:"max=2000"`
	IsAHATraining bool     `json:"is_aha_training"`
	CPRCost       *float64 `json:"cpr_cost" validate:"omitempty,min=0"`
	FACost        *float64 `json:"fa_cost" validate:"omitempty,min=0"`
	BothCost      *float64 `json:"both_cost" validate:"omitempty,min=0"`
}

type UpdateTrainingReq struct {
	Title         *string  `json:"title" validate:"omitempty,max=200"`
	SessionDate   *string  `json:"session_date" validate:"omitempty,datetime=2006-01-02"`
	StartTime     *string  `json:"start_time"`
	EndTime       *string  `json:"end_time"`
	Location      *string  `json:"location" validate:"omitempty,max=200"`
	Description   *string  `json:"description" validate:"omitempty,max=2000"`
	IsAHATraining *bool    `json:"is_aha_training"`
	CPRCost       *float64 `json:"cpr_cost" validate:"omitempty,min=0"`
	FACost        *float64 `json:"fa_cost" validate:"omitempty,min=0"`
	BothCost      *float64 `json:"both_cost" validate:"omitempty,min=0"`
	IsFinalized   *bool    `json:"is_finalized"`
}

type TrainingSignupReq struct {
	SignupType string `json:"signup_type" validate:"required"`
}

type UpdateProfileReq struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`
}

type UpdateMemberReq struct {
	Role           *string `json:"role"`
	AccountStatus  *string `json:"account_status"`
	DuesPaid       *bool   `json:"dues_paid"`
	DuesExpiration *string `json:"dues_expiration" validate:"omitempty,datetime=2006-01-02"`
}
