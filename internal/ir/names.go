package ir

const (
	taskPrefix      = "task-"
	componentPrefix = "comp-"
	executorPrefix  = "exec-"
	// inputPrefix marks a parameter forwarded across a scope boundary.
	inputPrefix = "pipelineparam--"

	// IteratorSuffix is appended to a loop's name to name its iterator.
	IteratorSuffix = "-iterator"
)

// TaskName returns the task spec name for a scope.
func TaskName(scope string) string {
	return taskPrefix + scope
}

// ComponentName returns the component table key for a scope.
func ComponentName(scope string) string {
	return componentPrefix + scope
}

// ExecutorLabel returns the default executor label for a task.
func ExecutorLabel(task string) string {
	return executorPrefix + task
}

// InputName returns the key under which a forwarded parameter is declared
// by a non-root component. fullName is the parameter name qualified with
// its producer.
func InputName(fullName string) string {
	return inputPrefix + fullName
}

// MetricsOutputName returns the unique key under which a metrics output is
// republished on the ancestors of its producing task.
func MetricsOutputName(taskName, output string) string {
	return taskName + "-" + output
}
