package util

// UserAgent identifies the aggregator on every vendor request.
const UserAgent = "JobAgg/1.0 (+local)"
