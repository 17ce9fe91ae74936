package services

import (
	"context"
	"fmt"
	"time"
	serrors "yatube/internal/services/errors"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

const relFollows = "FOLLOWS"

// Neo4jFollowGraph 将关注关系存放在 Neo4j 中，节点以用户 ID 标识
type Neo4jFollowGraph struct {
	driver neo4j.DriverWithContext
	log    *zap.Logger
}

// ConnectNeo4jFollowGraph 建立连接并做连通性检查，失败时重试若干次
func ConnectNeo4jFollowGraph(ctx context.Context, uri, user, pass string, log *zap.Logger) (*Neo4jFollowGraph, error) {
	var (
		drv neo4j.DriverWithContext
		err error
	)
	const maxRetries = 5
	retryDelay := 3 * time.Second

	for i := 1; i <= maxRetries; i++ {
		drv, err = neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, pass, ""))
		if err == nil {
			verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = drv.VerifyConnectivity(verifyCtx)
			cancel()
			if err == nil {
				log.Info("Neo4j connected", zap.String("uri", uri))
				return newNeo4jFollowGraph(ctx, drv, log)
			}
			_ = drv.Close(ctx)
		}
		log.Warn("Neo4j not reachable", zap.Int("attempt", i), zap.Error(err))

		if i < maxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryDelay):
			}
		}
	}
	return nil, fmt.Errorf("connect neo4j after %d attempts: %w", maxRetries, err)
}

// newNeo4jFollowGraph 在已连通的驱动上建立唯一约束，失败时关闭驱动
func newNeo4jFollowGraph(ctx context.Context, drv neo4j.DriverWithContext, log *zap.Logger) (*Neo4jFollowGraph, error) {
	g := &Neo4jFollowGraph{driver: drv, log: log}
	if err := g.ensureConstraint(ctx); err != nil {
		_ = drv.Close(ctx)
		return nil, err
	}
	return g, nil
}

func (g *Neo4jFollowGraph) ensureConstraint(ctx context.Context) error {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	res, err := session.Run(ctx, `CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE`, nil)
	if err == nil {
		_, err = res.Consume(ctx)
	}
	if err != nil {
		return fmt.Errorf("create neo4j constraint: %w", err)
	}
	return nil
}

// Close 关闭驱动
func (g *Neo4jFollowGraph) Close(ctx context.Context) error {
	return g.driver.Close(ctx)
}

// Follow 使用 MERGE，重复关注不会产生第二条边
func (g *Neo4jFollowGraph) Follow(ctx context.Context, followerID, authorID uint) error {
	if err := validateEdge(followerID, authorID); err != nil {
		return err
	}
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		q := `
		MERGE (a:User {id:$from})
		MERGE (b:User {id:$to})
		MERGE (a)-[:` + relFollows + `]->(b)`
		_, err := tx.Run(ctx, q, map[string]any{"from": int64(followerID), "to": int64(authorID)})
		return nil, err
	})
	if err != nil {
		return serrors.Wrap(serrors.ErrStore, "关注失败", err)
	}
	return nil
}

func (g *Neo4jFollowGraph) Unfollow(ctx context.Context, followerID, authorID uint) error {
	if err := validateEdge(followerID, authorID); err != nil {
		return err
	}
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		q := `
		MATCH (:User {id:$from})-[r:` + relFollows + `]->(:User {id:$to})
		DELETE r`
		_, err := tx.Run(ctx, q, map[string]any{"from": int64(followerID), "to": int64(authorID)})
		return nil, err
	})
	if err != nil {
		return serrors.Wrap(serrors.ErrStore, "取消关注失败", err)
	}
	return nil
}

func (g *Neo4jFollowGraph) IsFollowing(ctx context.Context, followerID, authorID uint) (bool, error) {
	count, err := g.readCount(ctx,
		`MATCH (:User {id:$from})-[r:`+relFollows+`]->(:User {id:$to}) RETURN count(r)`,
		map[string]any{"from": int64(followerID), "to": int64(authorID)})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (g *Neo4jFollowGraph) TargetsOf(ctx context.Context, followerID uint) ([]uint, error) {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	data, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		q := `MATCH (:User {id:$u})-[:` + relFollows + `]->(f:User) RETURN f.id AS id ORDER BY id`
		res, err := tx.Run(ctx, q, map[string]any{"u": int64(followerID)})
		if err != nil {
			return nil, err
		}
		ids := make([]uint, 0)
		for res.Next(ctx) {
			id, ok := res.Record().Values[0].(int64)
			if !ok {
				return nil, fmt.Errorf("unexpected id type %T", res.Record().Values[0])
			}
			ids = append(ids, uint(id))
		}
		return ids, res.Err()
	})
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrStore, "查询关注列表失败", err)
	}
	return data.([]uint), nil
}

func (g *Neo4jFollowGraph) FollowerCount(ctx context.Context, authorID uint) (int64, error) {
	return g.readCount(ctx,
		`MATCH (:User)-[r:`+relFollows+`]->(:User {id:$u}) RETURN count(r)`,
		map[string]any{"u": int64(authorID)})
}

func (g *Neo4jFollowGraph) FollowingCount(ctx context.Context, followerID uint) (int64, error) {
	return g.readCount(ctx,
		`MATCH (:User {id:$u})-[r:`+relFollows+`]->(:User) RETURN count(r)`,
		map[string]any{"u": int64(followerID)})
}

func (g *Neo4jFollowGraph) readCount(ctx context.Context, q string, params map[string]any) (int64, error) {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	data, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, q, params)
		if err != nil {
			return nil, err
		}
		record, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		return record.Values[0], nil
	})
	if err != nil {
		return 0, serrors.Wrap(serrors.ErrStore, "查询关注关系失败", err)
	}
	count, ok := data.(int64)
	if !ok {
		return 0, serrors.New(serrors.ErrStore, "invalid data format")
	}
	return count, nil
}
