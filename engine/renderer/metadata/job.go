package metadata

/** Definition for jobs. Runs on a worker goroutine. */
type JobStart func(params interface{}) (interface{}, error)

/** Definition for completion of a job. Runs on the thread calling JobSystem.Update. */
type JobOnComplete func(result interface{})

/** Definition for the failure of a job. Runs on the thread calling JobSystem.Update. */
type JobOnFail func(err error)

/** @brief Describes a type of job */
type JobType int

const (
	/**
	 * @brief A general job that does not have any specific thread requirements.
	 */
	JOB_TYPE_GENERAL JobType = 0x02
	/**
	 * @brief A resource loading job, like decoding a scene description from disk.
	 */
	JOB_TYPE_RESOURCE_LOAD JobType = 0x04
)

func (t JobType) String() string {
	switch t {
	case JOB_TYPE_GENERAL:
		return "general"
	case JOB_TYPE_RESOURCE_LOAD:
		return "resource_load"
	}
	return "unknown"
}

/**
 * @brief Describes a job to be run.
 */
type JobInfo struct {
	/** @brief The type of job. Only used for logging. */
	JobType JobType
	/** @brief A function to be invoked when the job starts. Required. */
	EntryPoint JobStart
	/** @brief A function to be invoked when the job successfully completes. Optional. */
	OnSuccess JobOnComplete
	/** @brief A function to be invoked when the job fails. Optional. */
	OnFail JobOnFail
	/** @brief Data to be passed to the entry point upon execution. */
	ParamData interface{}
}

// JobResultEntry is a finished job waiting for its callback to run.
type JobResultEntry struct {
	JobType JobType
	Result  interface{}
	Err     error
	// at most one of the two is called
	OnSuccess JobOnComplete
	OnFail    JobOnFail
}

// The max number of job results that can be stored at once.
const MAX_JOB_RESULTS int = 512
