// Package metrics holds the prometheus collectors behind the metric
// interfaces declared by their consumers.
package metrics

const namespace = "hive_objects"

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
