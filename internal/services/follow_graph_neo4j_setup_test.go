package services

import (
	"context"
	"errors"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubNeo4jDriver 只实现建约束用到的方法，其余方法调用会 panic
type stubNeo4jDriver struct {
	neo4j.DriverWithContext
	runErr error
	closed int
}

func (d *stubNeo4jDriver) NewSession(ctx context.Context, config neo4j.SessionConfig) neo4j.SessionWithContext {
	return &stubNeo4jSession{runErr: d.runErr}
}

func (d *stubNeo4jDriver) Close(ctx context.Context) error {
	d.closed++
	return nil
}

type stubNeo4jSession struct {
	neo4j.SessionWithContext
	runErr error
}

func (s *stubNeo4jSession) Run(ctx context.Context, cypher string, params map[string]any, configurers ...func(*neo4j.TransactionConfig)) (neo4j.ResultWithContext, error) {
	return nil, s.runErr
}

func (s *stubNeo4jSession) Close(ctx context.Context) error {
	return nil
}

func TestNewNeo4jFollowGraphClosesDriverWhenConstraintFails(t *testing.T) {
	drv := &stubNeo4jDriver{runErr: errors.New("constraint rejected")}

	graph, err := newNeo4jFollowGraph(ctx, drv, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "constraint rejected")
	assert.Nil(t, graph)
	assert.Equal(t, 1, drv.closed)
}
