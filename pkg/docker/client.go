// pkg/docker/client.go

package docker

import (
	"context"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
)

const defaultTimeout = 5 * time.Second

// New establishes a Docker client using environment configuration with API
// version negotiation enabled.
func New(ctx context.Context) (*client.Client, error) {
	return client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
}

// Ping validates connectivity with the Docker daemon within a short timeout window.
func Ping(ctx context.Context, cli *client.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := cli.Ping(pingCtx)
	return err
}

// ListProjectContainers lists the containers belonging to a compose project,
// including stopped ones.
func ListProjectContainers(ctx context.Context, cli *client.Client, project string) ([]container.Summary, error) {
	listCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	f := filters.NewArgs()
	f.Add("label", "com.docker.compose.project="+project)
	return cli.ContainerList(listCtx, container.ListOptions{All: true, Filters: f})
}

// RunningServices maps compose service names onto their container state for a
// project.
func RunningServices(ctx context.Context, cli *client.Client, project string) (map[string]string, error) {
	containers, err := ListProjectContainers(ctx, cli, project)
	if err != nil {
		return nil, err
	}

	states := make(map[string]string, len(containers))
	for _, c := range containers {
		service := c.Labels["com.docker.compose.service"]
		if service == "" {
			continue
		}
		states[service] = c.State
	}
	return states, nil
}
