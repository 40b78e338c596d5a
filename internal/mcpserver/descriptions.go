package mcpserver

func describeAnalyzeQuestion() string {
	return "Gathers the given C source files, groups them by question, scores every " +
		"eligible pair for the requested question with the five similarity measures, " +
		"and returns each file's best-match peer, composite score, and status " +
		"(OK/REVISAR/SUSPEITO) against the question's baseline."
}
