package config

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

var CronJobs = map[string]CronJob{
	// Add jobs here; packages can also self-register via cron.Register
}
