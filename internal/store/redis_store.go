package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/evyataryagoni/countryselect/internal/country"
	"github.com/evyataryagoni/countryselect/internal/locales"
	"github.com/redis/go-redis/v9"
)

// localesKey is the Redis set holding every locale that has a table
const localesKey = "locales"

// RedisStore implements Store interface using Redis
// Each locale is one hash, so a whole select list is a single HGETALL
//
// Redis Key Format:
//   - countries:<locale> (hash, field = country code, value = localized name)
//   - locales (set of locale names)
type RedisStore struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisStore creates a new Redis store
//
// Parameters:
//   - addr: Redis server address (e.g., "localhost:6379")
//   - password: Redis password (empty string if no password)
//   - db: Redis database number (0-15, default is 0)
//
// Returns:
//   - *RedisStore: pointer to the created store
//   - error: any error that occurred during connection
func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()

	// Test the connection
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client: client,
		ctx:    ctx,
	}, nil
}

// countriesKey builds the hash key of a locale
// Example: countries:en-US
func countriesKey(locale string) string {
	return fmt.Sprintf("countries:%s", locale)
}

// Lookup returns the name of code in locale
func (s *RedisStore) Lookup(locale, code string) (string, error) {
	code = country.CanonicalCode(code)

	name, err := s.client.HGet(s.ctx, countriesKey(locale), code).Result()
	if err == nil {
		return name, nil
	}
	if !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("Redis query failed: %w", err)
	}

	// The field is missing: tell an unknown locale apart from an unknown code
	known, err := s.client.SIsMember(s.ctx, localesKey, locale).Result()
	if err != nil {
		return "", fmt.Errorf("Redis query failed: %w", err)
	}
	if !known {
		return "", fmt.Errorf("%w: %s", country.ErrMissingLocale, locale)
	}
	return "", fmt.Errorf("%w: %s/%s", country.ErrNotFound, locale, code)
}

// AllCodes returns the codes of a locale in ascending order
func (s *RedisStore) AllCodes(locale string) ([]string, error) {
	codes, err := s.client.HKeys(s.ctx, countriesKey(locale)).Result()
	if err != nil {
		return nil, fmt.Errorf("Redis query failed: %w", err)
	}
	if len(codes) == 0 {
		return nil, fmt.Errorf("%w: %s", country.ErrMissingLocale, locale)
	}

	sort.Strings(codes)
	return codes, nil
}

// Table returns the whole hash of a locale
func (s *RedisStore) Table(locale string) (map[string]string, error) {
	countries, err := s.client.HGetAll(s.ctx, countriesKey(locale)).Result()
	if err != nil {
		return nil, fmt.Errorf("Redis query failed: %w", err)
	}
	// Redis deletes empty hashes, so an empty result means no such locale
	if len(countries) == 0 {
		return nil, fmt.Errorf("%w: %s", country.ErrMissingLocale, locale)
	}
	return countries, nil
}

// Locales lists the locales stored in Redis
func (s *RedisStore) Locales() ([]string, error) {
	names, err := s.client.SMembers(s.ctx, localesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("Redis query failed: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// SetTable replaces the table of one locale
// The old hash is dropped in the same transaction, so readers never see a mix
//
// Parameters:
//   - locale: the locale name
//   - countries: code -> localized name
func (s *RedisStore) SetTable(locale string, countries map[string]string) error {
	if len(countries) == 0 {
		return fmt.Errorf("refusing to store empty table for locale %s", locale)
	}

	fields := make(map[string]interface{}, len(countries))
	for code, name := range countries {
		fields[country.CanonicalCode(code)] = name
	}

	key := countriesKey(locale)
	_, err := s.client.TxPipelined(s.ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(s.ctx, key)
		pipe.HSet(s.ctx, key, fields)
		pipe.SAdd(s.ctx, localesKey, locale)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store locale %s in Redis: %w", locale, err)
	}
	return nil
}

// LoadTable stores every locale of a translation table
// Returns the number of translations written
func (s *RedisStore) LoadTable(table locales.Table) (int, error) {
	count := 0
	for _, locale := range table.Locales() {
		countries, _ := table.Countries(locale)
		if err := s.SetTable(locale, countries); err != nil {
			return count, err
		}
		count += len(countries)
	}
	return count, nil
}

// IsEmpty checks if Redis holds any locale
func (s *RedisStore) IsEmpty() (bool, error) {
	n, err := s.client.SCard(s.ctx, localesKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check Redis keys: %w", err)
	}
	return n == 0, nil
}

// Close closes the Redis connection
// Should be called when the application shuts down
func (s *RedisStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
