package roi

import (
	"strings"

	"github.com/apicus/roi-engine/common/models"
)

// Per-role weights for apportioning a workflow's total time savings
// across its nodes. Actions carry the most weight: they do the work a
// human would otherwise do. Group nodes are containers and earn nothing.
const (
	WeightTrigger  = 0.5
	WeightAction   = 1.2
	WeightDecision = 0.8
	WeightGroup    = 0.0
)

// RoleWeight returns the attribution weight for a node role. Unknown
// roles weigh like actions, matching the importer's fallback tagging.
func RoleWeight(role models.NodeRole) float64 {
	switch role {
	case models.RoleTrigger:
		return WeightTrigger
	case models.RoleDecision:
		return WeightDecision
	case models.RoleGroup:
		return WeightGroup
	default:
		return WeightAction
	}
}

// operationFactor adjusts a node's share by operation type: transforms
// and filters take longer than average, plain reads/fetches less.
// Applied after the weighted-share division, never before.
func operationFactor(operationType string) float64 {
	switch strings.ToLower(operationType) {
	case "transform", "filter":
		return 1.5
	case "read", "fetch":
		return 0.8
	default:
		return 1.0
	}
}

// NodeMinutes computes one node's share of totalMinutesPerRun by
// weighted type-factor apportionment over the full node list.
//
// Idempotent and side-effect-free: charts, group rollups, and property
// panels call this independently and must always agree. An empty list or
// an all-zero weight sum yields 0 for every node, never a division by
// zero.
func NodeMinutes(node models.GraphNode, all []models.GraphNode, totalMinutesPerRun float64) float64 {
	var weightSum float64
	for _, n := range all {
		weightSum += RoleWeight(n.Role)
	}
	if weightSum <= 0 {
		return 0
	}

	share := totalMinutesPerRun * RoleWeight(node.Role) / weightSum
	return share * operationFactor(node.OperationType)
}
