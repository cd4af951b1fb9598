package assets

// ServiceName is used as tracing resource name and SMTP Message-Id domain fallback.
const ServiceName = "sailpost"
