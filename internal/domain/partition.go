package domain

import "fmt"

// Partition name space is closed: up to 8 male and 8 female weighing
// partitions per house. In practice only M1-M2 and F1-F4 are used today.
const (
	MaxMalePartitions   = 8
	MaxFemalePartitions = 8
)

// PartitionWeight is a body-weight/uniformity sample for one weighing
// partition of a daily log.
type PartitionWeight struct {
	ID         int64   `json:"id" db:"id"`
	LogID      int64   `json:"log_id" db:"log_id"`
	Name       string  `json:"name" db:"name"`
	BodyWeight float64 `json:"body_weight" db:"body_weight"`
	Uniformity float64 `json:"uniformity" db:"uniformity"`
}

// PartitionNames returns the full closed name space: M1..M8 then F1..F8.
func PartitionNames() []string {
	names := make([]string, 0, MaxMalePartitions+MaxFemalePartitions)
	for i := 1; i <= MaxMalePartitions; i++ {
		names = append(names, fmt.Sprintf("M%d", i))
	}
	for i := 1; i <= MaxFemalePartitions; i++ {
		names = append(names, fmt.Sprintf("F%d", i))
	}
	return names
}

// ValidPartitionName reports whether name belongs to the closed name space.
func ValidPartitionName(name string) bool {
	if len(name) < 2 {
		return false
	}
	var n int
	if _, err := fmt.Sscanf(name[1:], "%d", &n); err != nil {
		return false
	}
	switch name[0] {
	case 'M':
		return n >= 1 && n <= MaxMalePartitions
	case 'F':
		return n >= 1 && n <= MaxFemalePartitions
	}
	return false
}
