package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	httpin "courier/internal/adapters/in/http"
	"courier/internal/adapters/out/mq"
	"courier/internal/adapters/out/postgres"
	"courier/internal/adapters/out/sessions"
	"courier/internal/adapters/out/waybill"
	"courier/internal/core/application/auth"
	"courier/internal/core/application/notifications"
	"courier/internal/core/application/usecases/commands"
	"courier/internal/core/application/usecases/queries"
	"courier/internal/core/domain/model/user"
	"courier/internal/core/ports"
	"courier/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      ports.Clock
	logger     *slog.Logger

	sessions ports.SessionStore
	archive  ports.WaybillArchive
	events   mq.Backend

	authenticator *auth.Authenticator
	closers       []func() error
}

// NewCompositionRoot connects the optional infrastructure named in cfg and
// falls back to in-process implementations for whatever is not configured.
func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:    cfg,
		gormDB: gormDB,
		clock:  ports.ClockFunc(time.Now),
		logger: logger,
	}

	if err := c.connectSessionStore(ctx); err != nil {
		return nil, errors.Join(err, c.Close())
	}
	if err := c.connectWaybillArchive(ctx); err != nil {
		return nil, errors.Join(err, c.Close())
	}
	if err := c.connectEventBackend(); err != nil {
		return nil, errors.Join(err, c.Close())
	}

	dispatcher := notifications.NewItemChangeDispatcher(
		mq.NewItemEventPublisher(c.events),
		c.archive,
		c.clock,
		cfg.Delivery.TransitDays,
		logger,
	)
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, postgres.WithCommitHook(dispatcher.OnCommit))

	authenticator, err := auth.NewAuthenticator(
		c.uowFactory.Create().UserRepository(),
		c.sessions,
		c.clock,
		cfg.Auth.JWTSecret,
		cfg.Auth.SessionIdleTTL,
		logger,
	)
	if err != nil {
		return nil, errors.Join(err, c.Close())
	}
	c.authenticator = authenticator

	return c, nil
}

func (c *CompositionRoot) connectSessionStore(ctx context.Context) error {
	if c.cfg.Redis.Addr == "" {
		c.sessions = sessions.NewMemoryStore()
		c.logger.Info("using in-memory session store")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     c.cfg.Redis.Addr,
		Password: c.cfg.Redis.Password,
		DB:       c.cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return fmt.Errorf("connect redis %s: %w", c.cfg.Redis.Addr, err)
	}

	c.closers = append(c.closers, rdb.Close)
	c.sessions = sessions.NewRedisStore(rdb, c.cfg.Auth.SessionIdleTTL)
	c.logger.Info("using redis session store", "addr", c.cfg.Redis.Addr)
	return nil
}

func (c *CompositionRoot) connectWaybillArchive(ctx context.Context) error {
	if c.cfg.Minio.Endpoint == "" {
		c.archive = waybill.NewMemoryArchive()
		c.logger.Info("using in-memory waybill archive")
		return nil
	}

	archive, err := waybill.NewMinioArchive(waybill.MinioConfig{
		Endpoint:  c.cfg.Minio.Endpoint,
		AccessKey: c.cfg.Minio.AccessKey,
		SecretKey: c.cfg.Minio.SecretKey,
		Bucket:    c.cfg.Minio.Bucket,
		UseSSL:    c.cfg.Minio.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("create minio archive: %w", err)
	}
	if err = archive.EnsureBucket(ctx); err != nil {
		return fmt.Errorf("ensure waybill bucket %s: %w", c.cfg.Minio.Bucket, err)
	}

	c.archive = archive
	c.logger.Info("using minio waybill archive", "endpoint", c.cfg.Minio.Endpoint, "bucket", c.cfg.Minio.Bucket)
	return nil
}

func (c *CompositionRoot) connectEventBackend() error {
	if c.cfg.RabbitMQ.URL == "" {
		c.events = mq.NewLogBackend(c.logger)
		c.logger.Info("item events are logged only")
		return nil
	}

	client, err := mq.NewRabbitMQClient(mq.RabbitMQConfig{
		URL:          c.cfg.RabbitMQ.URL,
		QueueDurable: true,
	})
	if err != nil {
		return fmt.Errorf("connect rabbitmq: %w", err)
	}

	c.closers = append(c.closers, client.Close)
	c.events = client
	c.logger.Info("publishing item events to rabbitmq", "queue", mq.ItemEventsQueue)
	return nil
}

// Close releases connections opened by NewCompositionRoot.
func (c *CompositionRoot) Close() error {
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errList = append(errList, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errList...)
}

func (c *CompositionRoot) Authenticator() *auth.Authenticator {
	return c.authenticator
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateEnsureAdministratorCommandHandler() commands.EnsureAdministratorCommandHandler {
	return commands.NewEnsureAdministratorCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateChangePasswordCommandHandler() commands.ChangePasswordCommandHandler {
	return commands.NewChangePasswordCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateAdjustBalanceCommandHandler() commands.AdjustBalanceCommandHandler {
	return commands.NewAdjustBalanceCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateSendItemCommandHandler() commands.SendItemCommandHandler {
	return commands.NewSendItemCommandHandler(c.fullUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateReceiveItemCommandHandler() commands.ReceiveItemCommandHandler {
	return commands.NewReceiveItemCommandHandler(c.itemUoWFactory(), c.clock, c.cfg.Delivery.TransitDays)
}

func (c *CompositionRoot) CreateDeleteItemCommandHandler() commands.DeleteItemCommandHandler {
	return commands.NewDeleteItemCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateGetUserInfoQueryHandler() queries.GetUserInfoQueryHandler {
	return queries.NewGetUserInfoQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListUsersQueryHandler() queries.ListUsersQueryHandler {
	return queries.NewListUsersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateQueryItemsQueryHandler() queries.QueryItemsQueryHandler {
	return queries.NewQueryItemsQueryHandler(c.uowFactory.Create().ItemRepository())
}

func (c *CompositionRoot) CreateGetWaybillQueryHandler() queries.GetWaybillQueryHandler {
	return queries.NewGetWaybillQueryHandler(
		c.uowFactory.Create().ItemRepository(),
		c.archive,
		c.cfg.Delivery.TransitDays,
	)
}

// CreateHTTPServer wires every use case behind the HTTP API.
func (c *CompositionRoot) CreateHTTPServer() (*echo.Echo, error) {
	registerUser := c.CreateRegisterUserCommandHandler()
	changePassword := c.CreateChangePasswordCommandHandler()
	adjustBalance := c.CreateAdjustBalanceCommandHandler()
	sendItem := c.CreateSendItemCommandHandler()
	receiveItem := c.CreateReceiveItemCommandHandler()
	deleteItem := c.CreateDeleteItemCommandHandler()

	server := httpin.NewServer(httpin.Handlers{
		RegisterUser:   &registerUser,
		ChangePassword: &changePassword,
		AdjustBalance:  &adjustBalance,
		SendItem:       &sendItem,
		ReceiveItem:    &receiveItem,
		DeleteItem:     &deleteItem,
		GetUserInfo:    c.CreateGetUserInfoQueryHandler(),
		ListUsers:      c.CreateListUsersQueryHandler(),
		QueryItems:     c.CreateQueryItemsQueryHandler(),
		GetWaybill:     c.CreateGetWaybillQueryHandler(),
	}, c.authenticator, c.logger)

	return httpin.NewRouter(server, c.authenticator, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.authenticator, c.cfg.Auth.SessionSweepSchedule, c.logger)
}

// EnsureAdministrator creates the administrator account on first start.
func (c *CompositionRoot) EnsureAdministrator(ctx context.Context) error {
	cmd, err := commands.NewEnsureAdministratorCommand(c.cfg.Admin.Password, user.Profile{
		Name:    c.cfg.Admin.Name,
		Phone:   c.cfg.Admin.Phone,
		Address: c.cfg.Admin.Address,
	})
	if err != nil {
		return err
	}

	handler := c.CreateEnsureAdministratorCommandHandler()
	created, err := handler.Handle(ctx, cmd)
	if err != nil {
		return fmt.Errorf("ensure administrator: %w", err)
	}
	if created {
		c.logger.Info("administrator account created", "username", user.AdministratorUsername)
	}
	return nil
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) itemUoWFactory() commands.ItemUoWFactory {
	return FuncItemUoWFactory(func() commands.ItemUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncItemUoWFactory func() commands.ItemUoW

func (f FuncItemUoWFactory) Create() commands.ItemUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
