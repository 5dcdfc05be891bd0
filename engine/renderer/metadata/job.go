package metadata

import "context"

/** Definition for jobs. */
type JobStart func(ctx context.Context) error

/** Definition for completion of a job. */
type JobOnComplete func()

/** Definition for failure of a job. */
type JobOnFailure func(err error)

/** @brief Describes a type of job */
type JobType int

const (
	/**
	 * @brief A general job that does not have any specific thread requirements.
	 */
	JOB_TYPE_GENERAL JobType = 0x02
	/**
	 * @brief A resource loading job.
	 */
	JOB_TYPE_RESOURCE_LOAD JobType = 0x04
)

/**
 * @brief Describes a job to be run.
 */
type JobTask struct {
	/** @brief A human readable name, used in logs. */
	Name string
	/** @brief The type of job. */
	JobType JobType
	/** @brief A function invoked when the job starts. Required. */
	OnStart JobStart
	/** @brief Invoked when OnStart returned nil. Optional. */
	OnComplete JobOnComplete
	/** @brief Invoked with the error returned by OnStart. Optional. */
	OnFailure JobOnFailure
	/** @brief Always invoked last, whatever the outcome. Optional. */
	OnCompletionCallback func()
}
