package container

import (
	"cloud.google.com/go/storage"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/sda-collective/member-directory/config"
	"github.com/sda-collective/member-directory/internal/infrastructure/shopify"
	"github.com/sda-collective/member-directory/pkg/helpers"
)

// App-level container sharing constructed components across packages so the
// router can wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client
	gcsClient   *storage.Client

	storeClient *shopify.Client
	sessions    *helpers.SessionManager
	rabbitPub   *helpers.RabbitPublisher
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }
func SetRedis(r *redis.Client)   { redisClient = r }
func GetRedis() *redis.Client    { return redisClient }
func SetGCS(s *storage.Client)   { gcsClient = s }
func GetGCS() *storage.Client    { return gcsClient }

func SetStoreClient(c *shopify.Client) { storeClient = c }
func GetStoreClient() *shopify.Client  { return storeClient }

func SetSessions(m *helpers.SessionManager) { sessions = m }
func GetSessions() *helpers.SessionManager  { return sessions }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
