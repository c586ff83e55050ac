package constants

const (
	GetMemberById = `
	SELECT * FROM members WHERE id = $1
	`

	GetMemberByEmail = `
	SELECT * FROM members WHERE email = $1
	`

	ListMembers = `
	SELECT * FROM members ORDER BY last_name, first_name
	`

	ListEvents = `
	SELECT * FROM events ORDER BY event_date, start_time
	`

	ListUpcomingEvents = `
	SELECT * FROM events WHERE event_date >= $1 ORDER BY event_date, start_time
	`

	GetEventById = `
	SELECT * FROM events WHERE id = $1
	`

	// Waitlist rows join each signup with its member plus the member's derived
	// confirmed-hours and active-penalty totals, used for display and for
	// lowest-hours-first ordering.
	ListEventWaitlist = `
	SELECT s.id, s.event_id, s.member_id, s.position_type, s.signup_time,
	       s.is_assigned, s.assigned_by, s.assigned_time,
	       m.first_name, m.last_name, m.email, m.role,
	       COALESCE((SELECT SUM(h.confirmed_hours) FROM event_hours h
	                 WHERE h.member_id = m.id AND h.is_confirmed), 0) AS total_hours,
	       COALESCE((SELECT SUM(p.points) FROM penalty_points p
	                 WHERE p.member_id = m.id AND p.is_active
	                   AND (p.auto_remove_date IS NULL OR p.auto_remove_date > $2)), 0) AS penalty_points
	FROM event_signups s
	JOIN members m ON m.id = s.member_id
	WHERE s.event_id = $1
	ORDER BY s.signup_time
	`

	MemberTotalHours = `
	SELECT COALESCE(SUM(confirmed_hours), 0) FROM event_hours
	WHERE member_id = $1 AND is_confirmed
	`

	MemberPendingHours = `
	SELECT COALESCE(SUM(calculated_hours), 0) FROM event_hours
	WHERE member_id = $1 AND NOT is_confirmed
	`

	ListMemberHours = `
	SELECT * FROM event_hours WHERE member_id = $1 ORDER BY created_at
	`

	ListEventHours = `
	SELECT * FROM event_hours WHERE event_id = $1 ORDER BY created_at
	`

	ListMemberCertifications = `
	SELECT * FROM certifications WHERE member_id = $1 ORDER BY upload_date DESC
	`

	ListPendingCertifications = `
	SELECT * FROM certifications WHERE NOT is_approved ORDER BY upload_date
	`

	ListMemberPenalties = `
	SELECT * FROM penalty_points WHERE member_id = $1 ORDER BY assigned_date DESC
	`

	MemberPenaltyTotal = `
	SELECT COALESCE(SUM(points), 0) FROM penalty_points
	WHERE member_id = $1 AND is_active
	  AND (auto_remove_date IS NULL OR auto_remove_date > $2)
	`

	ListTrainingSessions = `
	SELECT * FROM training_sessions ORDER BY session_date, start_time
	`

	ListUpcomingTrainingSessions = `
	SELECT * FROM training_sessions WHERE session_date >= $1 ORDER BY session_date, start_time
	`

	GetTrainingSessionById = `
	SELECT * FROM training_sessions WHERE id = $1
	`

	ListTrainingRoster = `
	SELECT s.id, s.session_id, s.member_id, s.signup_type, s.signup_time, s.payment_confirmed,
	       m.first_name, m.last_name, m.email, m.role
	FROM training_signups s
	JOIN members m ON m.id = s.member_id
	WHERE s.session_id = $1
	ORDER BY s.signup_time
	`
)
