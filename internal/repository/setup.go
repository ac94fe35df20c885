package repository

import (
	"docs-portal/config"
	"docs-portal/internal/ports"
	"log"
)

// OpenProfileCache : Redis необязателен, без адреса или с нулевым TTL профили не кэшируются
func OpenProfileCache(cfg *config.AppConfig) (ports.ProfileCache, func()) {
	if cfg.RedisConfig.Addr == "" || cfg.ProfileCacheTTL() <= 0 {
		log.Println("Кэш профилей отключен")
		return NoopCacheRepository{}, func() {}
	}

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Printf("Ошибка подключения к Redis, кэш профилей отключен: %v", err)
		return NoopCacheRepository{}, func() {}
	}

	return NewCacheRepository(redisClient), func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}
}

// OpenUploadJournal : Postgres необязателен, без DSN журнал загрузок не ведется
func OpenUploadJournal(cfg *config.AppConfig) (ports.UploadJournal, func()) {
	if cfg.DatabaseConfig.DSN == "" {
		log.Println("Журнал загрузок отключен")
		return NoopUploadJournal{}, func() {}
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Printf("Не удалось подключиться к БД, журнал загрузок отключен: %v", err)
		return NoopUploadJournal{}, func() {}
	}

	return NewUploadRepository(db), func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}
}
