package tasks

type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
	EnqueueRefresh() error
	EnqueueClassify(itemID string) error
}
