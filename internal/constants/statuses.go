package constants

import (
	"database/sql/driver"
	"fmt"
)

// AccountStatus mirrors the Postgres ENUM 'account_status'
type AccountStatus string

const (
	AccountPending  AccountStatus = "pending"
	AccountActive   AccountStatus = "active"
	AccountInactive AccountStatus = "inactive"
)

func (s AccountStatus) String() string { return string(s) }

func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountPending, AccountActive, AccountInactive:
		return true
	}
	return false
}

func (s *AccountStatus) Scan(src interface{}) error {
	if src == nil {
		*s = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*s = AccountStatus(v)
	case []byte:
		*s = AccountStatus(v)
	default:
		return fmt.Errorf("AccountStatus: cannot scan type %T", src)
	}
	return nil
}

func (s AccountStatus) Value() (driver.Value, error) { return string(s), nil }

// PositionType is the staffing slot a signup requests on an event.
type PositionType string

const (
	PositionSupervisor PositionType = "supervisor"
	PositionEMT        PositionType = "emt"
	PositionFAEMR      PositionType = "fa_emr"
)

func (p PositionType) String() string { return string(p) }

func (p PositionType) IsValid() bool {
	switch p {
	case PositionSupervisor, PositionEMT, PositionFAEMR:
		return true
	}
	return false
}

func (p *PositionType) Scan(src interface{}) error {
	if src == nil {
		*p = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*p = PositionType(v)
	case []byte:
		*p = PositionType(v)
	default:
		return fmt.Errorf("PositionType: cannot scan type %T", src)
	}
	return nil
}

func (p PositionType) Value() (driver.Value, error) { return string(p), nil }

// CertificationType enumerates the qualification proofs members can upload.
type CertificationType string

const (
	CertFirstAid CertificationType = "first_aid"
	CertBLSCPR   CertificationType = "bls_cpr"
	CertEMT      CertificationType = "emt"
	CertEMR      CertificationType = "emr"
	CertICS100   CertificationType = "ics_100"
	CertICS200   CertificationType = "ics_200"
	CertICS700   CertificationType = "ics_700"
	CertICS800   CertificationType = "ics_800"
)

func (c CertificationType) String() string { return string(c) }

func (c CertificationType) IsValid() bool {
	switch c {
	case CertFirstAid, CertBLSCPR, CertEMT, CertEMR,
		CertICS100, CertICS200, CertICS700, CertICS800:
		return true
	}
	return false
}

// CertificationStatus is derived at read time, never stored.
type CertificationStatus string

const (
	CertStatusPending      CertificationStatus = "pending"
	CertStatusApproved     CertificationStatus = "approved"
	CertStatusExpiringSoon CertificationStatus = "expiring_soon"
	CertStatusExpired      CertificationStatus = "expired"
)

// TrainingSignupType selects a price tier on AHA training sessions.
type TrainingSignupType string

const (
	TrainingCPROnly TrainingSignupType = "cpr_only"
	TrainingFAOnly  TrainingSignupType = "fa_only"
	TrainingBoth    TrainingSignupType = "both"
)

func (t TrainingSignupType) String() string { return string(t) }

func (t TrainingSignupType) IsValid() bool {
	switch t {
	case TrainingCPROnly, TrainingFAOnly, TrainingBoth:
		return true
	}
	return false
}
