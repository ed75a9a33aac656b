package launcher

// exitCodes maps common JVM and shell exit statuses to short
// descriptions used in attempt logging.
var exitCodes = map[int]string{
	1:   "application error or unsupported class file version",
	2:   "command line usage error",
	126: "entry point found but not executable",
	127: "entry point not found",
	130: "terminated by interrupt",
	134: "JVM aborted",
	137: "killed, possibly out of memory",
	139: "JVM segmentation fault",
	143: "terminated",
}

// DescribeExit returns a short description for an exit status, or a
// generic message if unknown.
func DescribeExit(code int) string {
	if msg, ok := exitCodes[code]; ok {
		return msg
	}

	return "unknown error"
}
