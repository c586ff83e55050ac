package api

import (
	"github.com/s4ngl/iu-icems-website-sub000/internal/common"
	"github.com/s4ngl/iu-icems-website-sub000/internal/db"
	"github.com/s4ngl/iu-icems-website-sub000/internal/db/repositories"
	"github.com/s4ngl/iu-icems-website-sub000/internal/metrics"
	"github.com/s4ngl/iu-icems-website-sub000/internal/providers"
	"github.com/s4ngl/iu-icems-website-sub000/internal/services"

	"github.com/redis/go-redis/v9"
)

type Repositories struct {
	Member        *repositories.MemberRepository
	MemberGorm    *repositories.MemberRepositoryGORM
	Event         *repositories.EventRepository
	Certification *repositories.CertificationRepository
	Penalty       *repositories.PenaltyRepository
	Training      *repositories.TrainingRepository
}

type Services struct {
	Cache         common.CacheInterface
	Queue         *common.NotificationQueueService
	Notifications *services.NotificationService
	Member        *services.MemberService
	Event         *services.EventService
	Signup        *services.SignupService
	Hours         *services.HoursService
	Certification *services.CertificationService
	Penalty       *services.PenaltyService
	Training      *services.TrainingService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Redis    *redis.Client
	Metrics  *metrics.MetricsRegistry
}

func InitDependencies(metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {

	repos := &Repositories{
		Member:        repositories.NewMemberRepository(db.DB),
		MemberGorm:    repositories.NewMemberRepositoryGORM(db.PgDB),
		Event:         repositories.NewEventRepository(db.DB),
		Certification: repositories.NewCertificationRepository(db.DB),
		Penalty:       repositories.NewPenaltyRepository(db.DB),
		Training:      repositories.NewTrainingRepository(db.DB),
	}

	cacheSvc := common.NewCacheService(300, 600)

	redisClient := common.NewRedisClient()
	var queueSvc *common.NotificationQueueService
	if redisClient != nil {
		queueSvc = common.NewNotificationQueueService(redisClient)
	}

	mailer := providers.NewMailProvider()
	notifySvc := services.NewNotificationService(queueSvc, mailer, metricsReg)

	svcs := &Services{
		Cache:         cacheSvc,
		Queue:         queueSvc,
		Notifications: notifySvc,
		Member:        services.NewMemberService(repos.Member, db.PgDB, notifySvc),
		Event:         services.NewEventService(db.PgDB, notifySvc),
		Signup:        services.NewSignupService(db.PgDB, notifySvc, metricsReg),
		Hours:         services.NewHoursService(db.PgDB, metricsReg),
		Certification: services.NewCertificationService(db.PgDB, notifySvc, services.ExpiryLookahead()),
		Penalty:       services.NewPenaltyService(db.PgDB),
		Training:      services.NewTrainingService(db.PgDB, notifySvc, metricsReg),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Redis:    redisClient,
		Metrics:  metricsReg,
	}, nil
}
