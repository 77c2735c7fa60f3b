package suite

import (
	"context"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const (
	containerTTL = 120 // seconds
	startTimeout = 120 * time.Second

	redisImage = "redis"
	redisTag   = "alpine"
	redisPort  = "6379/tcp"
)

type Suite struct {
	*testing.T

	Storage *redis.Client
}

// New - starts a throwaway redis container for the test and returns an empty database in it.
// The test is skipped when docker is not reachable.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	t.Cleanup(cancel)

	pool := dockerPool(t)
	resource := runRedis(t, pool)
	client := connect(ctx, t, pool, resource)

	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush redis: %v", err)
	}

	return ctx, &Suite{
		T:       t,
		Storage: client,
	}
}

func dockerPool(t *testing.T) *dockertest.Pool {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("could not connect to docker: %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker is not available: %v", err)
	}

	pool.MaxWait = startTimeout

	return pool
}

// runRedis - the container removes itself once stopped and is killed after containerTTL at the latest.
func runRedis(t *testing.T, pool *dockertest.Pool) *dockertest.Resource {
	t.Helper()

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(hostConfig *docker.HostConfig) {
		hostConfig.AutoRemove = true
		hostConfig.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start redis container: %v", err)
	}

	_ = resource.Expire(containerTTL)

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Errorf("could not purge redis container: %v", err)
		}
	})

	return resource
}

// connect - retries with backoff until redis inside the container accepts connections.
func connect(ctx context.Context, t *testing.T, pool *dockertest.Pool, resource *dockertest.Resource) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: resource.GetHostPort(redisPort),
	})
	t.Cleanup(func() {
		_ = client.Close()
	})

	if err := pool.Retry(func() error {
		return client.Ping(ctx).Err()
	}); err != nil {
		t.Fatalf("could not connect to redis: %v", err)
	}

	return client
}
