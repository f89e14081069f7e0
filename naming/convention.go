package naming

import "fmt"

// InstanceLogicalName names the n-th cluster member resource, counting from 1.
func InstanceLogicalName(ordinal int) string {
	return fmt.Sprintf("Instance%d", ordinal)
}
