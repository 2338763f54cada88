package scorer

// Static pattern catalog. Three independent signal layers (level
// severity, keywords, structural patterns) plus contextual modifiers.
// All tables are read-only after package init; scoring never mutates
// them.

// severityEntry maps a log level name to its contribution.
type severityEntry struct {
	score    int
	category string
}

var severityTable = map[string]severityEntry{
	"fatal":     {100, "FATAL_LEVEL"},
	"critical":  {100, "FATAL_LEVEL"},
	"emergency": {100, "FATAL_LEVEL"},
	"panic":     {100, "FATAL_LEVEL"},
	"error":     {80, "ERROR_LEVEL"},
	"err":       {80, "ERROR_LEVEL"},
	"severe":    {80, "ERROR_LEVEL"},
	"alert":     {75, "ALERT_LEVEL"},
	"warn":      {50, "WARNING_LEVEL"},
	"warning":   {50, "WARNING_LEVEL"},
	"notice":    {20, "NOTICE_LEVEL"},
	"info":      {0, ""},
	"debug":     {0, ""},
	"trace":     {0, ""},
}

// keywordEntry is a case-insensitive substring signal. Every keyword
// found in a message contributes its weight independently, uncapped.
type keywordEntry struct {
	keyword string
	weight  int
}

var keywordTable = []keywordEntry{
	{"failed", 15},
	{"failure", 15},
	{"fail", 12},
	{"error", 12},
	{"exception", 20},
	{"fatal", 22},
	{"critical", 20},
	{"panic", 22},
	{"crash", 20},
	{"segfault", 25},
	{"core dump", 24},
	{"abort", 16},
	{"undefined", 18},
	{"not found", 15},
	{"null pointer", 25},
	{"nil pointer", 25},
	{"timeout", 15},
	{"timed out", 15},
	{"refused", 18},
	{"unreachable", 18},
	{"disconnect", 14},
	{"broken pipe", 20},
	{"connection reset", 20},
	{"denied", 15},
	{"unauthorized", 18},
	{"forbidden", 15},
	{"invalid", 12},
	{"malformed", 16},
	{"corrupt", 18},
	{"missing", 12},
	{"unable", 12},
	{"cannot", 10},
	{"can't", 10},
	{"unexpected", 14},
	{"unhandled", 18},
	{"uncaught", 18},
	{"deadlock", 25},
	{"race condition", 22},
	{"leak", 16},
	{"overflow", 20},
	{"underflow", 18},
	{"stack trace", 18},
	{"stacktrace", 18},
	{"traceback", 18},
	{"killed", 16},
	{"terminated", 14},
	{"out of memory", 25},
	{"oom", 22},
	{"no such file", 18},
	{"permission denied", 20},
	{"eacces", 18},
	{"enoent", 16},
	{"econnrefused", 20},
	{"etimedout", 18},
	{"econnreset", 20},
	{"disk full", 22},
	{"no space", 20},
	{"rollback", 14},
	{"rolled back", 14},
	{"retrying", 8},
	{"conflict", 12},
	{"duplicate", 10},
	{"violation", 16},
	{"constraint", 12},
	{"foreign key", 14},
	{"unparseable", 18},
	{"inconsistent", 12},
	{"mismatch", 14},
	{"incompatible", 14},
	{"unsupported", 12},
	{"deprecated", 6},
	{"throttle", 10},
	{"rate limit", 14},
	{"evicted", 14},
	{"rejected", 14},
	{"dropped", 10},
	{"orphaned", 10},
	{"zombie", 12},
	{"hung", 14},
	{"stuck", 12},
	{"unresponsive", 16},
	{"degraded", 14},
	{"unavailable", 16},
	{"outage", 20},
	{"breach", 18},
	{"expired", 10},
	{"revoked", 12},
}

// structuralPattern is a regex signal with a fixed score and a named
// category. Patterns are applied to the raw message with the
// case-insensitive flag; duplicate categories across matches are
// deduplicated in the category list while every match still adds its
// score.
type structuralPattern struct {
	name     string
	category string
	score    int
	pattern  string
}

var structuralTable = []structuralPattern{
	// Null / undefined value shapes.
	{"field-undefined", "NULL_VALUE", 22, `\w+:\s*undefined\b`},
	{"field-null", "NULL_VALUE", 20, `\w+:\s*null\b`},
	{"returned-null", "NULL_VALUE", 22, `returned (null|nil|undefined)`},
	{"is-null", "NULL_VALUE", 20, `\bis (undefined|null|nil)\b`},
	{"undefined-not-function", "NULL_VALUE", 28, `undefined is not a function`},
	{"read-property-of-null", "NULL_VALUE", 28, `cannot read propert(y|ies) of (null|undefined)`},
	{"null-pointer", "NULL_VALUE", 30, `(null|nil) pointer (exception|dereference)`},

	// Network / connection failures.
	{"connection-refused", "CONNECTION", 28, `connection refused`},
	{"connection-dropped", "CONNECTION", 24, `connection (reset|closed|aborted|lost)`},
	{"broken-pipe", "CONNECTION", 24, `broken pipe`},
	{"no-route", "NETWORK", 26, `no route to host`},
	{"host-unreachable", "NETWORK", 24, `host (unreachable|not found)`},
	{"dns-failure", "NETWORK", 26, `dns (lookup|resolution) fail\w*`},
	{"network-down", "NETWORK", 26, `network is (down|unreachable)`},
	{"tls-handshake", "NETWORK", 26, `tls.{0,40}handshake.{0,20}(fail|error)`},
	{"bad-certificate", "SECURITY", 26, `certificate.{0,30}(expired|invalid|unknown|verify)`},

	// Timeouts.
	{"operation-timeout", "TIMEOUT", 24, `(request|operation|call|query) timed? ?out`},
	{"timeout-exceeded", "TIMEOUT", 24, `timeout (exceeded|waiting|after|reached)`},
	{"deadline-exceeded", "TIMEOUT", 26, `deadline exceeded`},

	// Resource exhaustion.
	{"quota-exceeded", "RESOURCE", 22, `exceeded.{0,30}(quota|limit)`},
	{"too-many", "RESOURCE", 26, `too many (open files|connections|requests|retries)`},
	{"out-of-memory", "MEMORY", 30, `out of memory`},
	{"memory-failure", "MEMORY", 28, `memory (limit|allocation) (exceeded|fail\w*)`},
	{"oom-kill", "MEMORY", 30, `oom[- ]?kill`},
	{"stack-overflow", "MEMORY", 28, `stack overflow`},
	{"disk-full", "FILESYSTEM", 28, `no space left on device`},
	{"file-missing", "FILESYSTEM", 22, `no such file or directory`},

	// Auth and access.
	{"permission-denied", "AUTH", 24, `permission denied`},
	{"access-denied", "AUTH", 24, `access denied`},
	{"auth-failed", "AUTH", 28, `(authentication|authorization) fail\w*`},
	{"bad-credentials", "AUTH", 26, `invalid (token|credentials?|api key|password)`},
	{"token-expired", "AUTH", 24, `token (expired|revoked|rejected)`},
	{"login-failed", "AUTH", 24, `login fail\w*`},

	// HTTP status mentions.
	{"http-4xx-status", "HTTP_CLIENT_ERROR", 20, `status( code)?[:= ]+4\d\d`},
	{"http-5xx-status", "HTTP_SERVER_ERROR", 26, `status( code)?[:= ]+5\d\d`},
	{"http-5xx-phrase", "HTTP_SERVER_ERROR", 28, `\b(500 internal server error|502 bad gateway|503 service unavailable|504 gateway timeout)\b`},
	{"http-4xx-phrase", "HTTP_CLIENT_ERROR", 22, `\b(400 bad request|401 unauthorized|403 forbidden|404 not found|409 conflict|429 too many requests)\b`},

	// Configuration.
	{"bad-config", "CONFIG", 22, `(missing|invalid|unknown) (config|configuration|setting|option)`},
	{"env-unset", "CONFIG", 24, `environment variable.{0,40}(not set|missing|undefined)`},
	{"config-load-failed", "CONFIG", 26, `failed to (load|parse|read) config\w*`},

	// Validation.
	{"validation-failed", "VALIDATION", 22, `validation (error|fail\w*)`},
	{"schema-violation", "VALIDATION", 24, `(schema|constraint) violation`},
	{"required-field", "VALIDATION", 22, `required field.{0,40}(missing|not provided)`},
	{"invalid-input", "VALIDATION", 20, `invalid (input|argument|parameter|value|format)`},

	// Database.
	{"db-error", "DATABASE", 26, `(sql|database|query) (error|fail\w*)`},
	{"duplicate-key", "DATABASE", 22, `duplicate (key|entry)`},
	{"fk-violation", "DATABASE", 24, `foreign key (constraint|violation)`},
	{"relation-missing", "DATABASE", 26, `(table|column|relation).{0,40}(does not exist|not found)`},
	{"tx-failed", "DATABASE", 26, `transaction (aborted|rolled back|deadlock)`},
	{"pool-exhausted", "DATABASE", 26, `connection pool (exhausted|timeout|full)`},

	// Parsing.
	{"parse-error", "PARSE", 22, `(parse|syntax) error`},
	{"unexpected-token", "PARSE", 24, `unexpected (token|character|end of (input|file|stream))`},
	{"decode-failed", "PARSE", 24, `failed to (parse|unmarshal|decode|deserialize)`},
	{"malformed-payload", "PARSE", 24, `malformed (json|xml|yaml|request|input|payload)`},

	// Concurrency.
	{"deadlock", "CONCURRENCY", 30, `deadlock( detected)?`},
	{"race-condition", "CONCURRENCY", 26, `race condition`},
	{"concurrent-mutation", "CONCURRENCY", 26, `concurrent (map|modification)`},
	{"lock-timeout", "CONCURRENCY", 24, `lock (timeout|wait timeout|contention)`},
	{"goroutine-leak", "CONCURRENCY", 26, `(goroutine|thread) (leak|starvation)`},

	// Runtime failures.
	{"unhandled-error", "RUNTIME", 28, `(unhandled|uncaught) (exception|rejection|error)`},
	{"panic-prefix", "RUNTIME", 30, `panic:`},
	{"segfault", "RUNTIME", 32, `segmentation fault`},
	{"nonzero-exit", "RUNTIME", 22, `exit (status|code) [1-9]`},
	{"fatal-error", "RUNTIME", 30, `fatal error`},
	{"assertion-failed", "RUNTIME", 26, `assertion fail\w*`},
	{"index-out-of-range", "RUNTIME", 26, `index out of (range|bounds)`},
	{"divide-by-zero", "RUNTIME", 24, `division by zero`},

	// Availability.
	{"service-unavailable", "AVAILABILITY", 26, `service unavailable`},
	{"circuit-open", "AVAILABILITY", 24, `circuit breaker (open|tripped)`},
	{"health-check-failed", "AVAILABILITY", 26, `health ?check fail\w*`},
}

// contextModifier scales the accumulated score when its regex matches.
// Amplifiers carry a multiplier above 1, dampeners below 1. All matching
// modifiers apply multiplicatively; multiplication commutes, so order is
// irrelevant.
type contextModifier struct {
	name       string
	multiplier float64
	pattern    string
}

var amplifierTable = []contextModifier{
	{"critical-context", 1.5, `\bcritical\b`},
	{"unhandled-context", 1.4, `\b(unhandled|uncaught)\b`},
	{"production-context", 1.3, `\b(production|prod)\b`},
	{"data-loss-context", 1.5, `\b(data loss|corruption)\b`},
	{"security-context", 1.3, `\b(security|breach|exploit)\b`},
	{"emergency-context", 1.5, `\bemergency\b`},
	{"severe-context", 1.3, `\bsevere(ly)?\b`},
	{"persistent-context", 1.3, `\b(repeatedly|persistent(ly)?|still failing)\b`},
}

var dampenerTable = []contextModifier{
	{"no-error", 0.3, `\bno errors?\b`},
	{"without-error", 0.3, `\bwithout (any )?(errors?|failures?)\b`},
	{"error-free", 0.3, `\berror[- ]free\b`},
	{"successfully", 0.3, `\bsuccessfully\b`},
	{"success", 0.5, `\bsuccess\b`},
	{"conditional-error", 0.5, `\bif\b.{0,40}\berrors?\b`},
	{"in-case-of-error", 0.5, `\bin case of\b.{0,30}\berrors?\b`},
	{"zero-errors", 0.3, `\b0 (errors?|failures?)\b`},
	{"test-context", 0.6, `\btest(s|ing)?\b`},
	{"mock-context", 0.5, `\bmock\w*\b`},
	{"expected-error", 0.5, `\bexpected\b.{0,30}\berrors?\b`},
	{"recovered", 0.6, `\brecovered( from)?\b`},
	{"resolved", 0.6, `\b(resolved|fixed)\b`},
	{"retry-succeeded", 0.4, `\bretry succeeded\b`},
	{"graceful", 0.6, `\bgracefully\b`},
	{"healthy", 0.5, `\bhealthy\b`},
	{"simulated", 0.5, `\bsimulat(ed|ion)\b`},
	{"dry-run", 0.5, `\bdry[- ]run\b`},
}
