package cassandra

import (
	"fmt"
	"strings"
	"time"

	"github.com/Dhoini/Customer-microservice/pkg/logger"
	"github.com/gocql/gocql"
)

// NewSession создает новую сессию Cassandra.
// Пул соединений, ретраи и token-aware маршрутизация — на стороне драйвера.
func NewSession(hosts []string, keyspace, consistency string, log *logger.Logger) (*gocql.Session, error) {
	log.Info("Connecting to Cassandra at %s", strings.Join(hosts, ","))

	cluster := gocql.NewCluster(hosts...)
	cluster.Keyspace = keyspace
	cluster.Consistency = parseConsistency(consistency)
	cluster.Timeout = 10 * time.Second
	cluster.ConnectTimeout = 10 * time.Second
	cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.RoundRobinHostPolicy())

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("unable to create cassandra session: %w", err)
	}

	log.Info("Successfully connected to Cassandra, keyspace %s", keyspace)
	return session, nil
}

// parseConsistency преобразует строку из конфига в уровень консистентности.
// Неизвестные значения сводятся к QUORUM.
func parseConsistency(s string) gocql.Consistency {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ANY":
		return gocql.Any
	case "ONE":
		return gocql.One
	case "TWO":
		return gocql.Two
	case "THREE":
		return gocql.Three
	case "ALL":
		return gocql.All
	case "LOCAL_QUORUM":
		return gocql.LocalQuorum
	case "EACH_QUORUM":
		return gocql.EachQuorum
	case "LOCAL_ONE":
		return gocql.LocalOne
	default:
		return gocql.Quorum
	}
}
