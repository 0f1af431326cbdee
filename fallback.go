package infradocs

// fallbackContent is served in place of a package's main document when
// GitHub cannot be reached.
var fallbackContent = map[Package]string{
	AIInfra: "# ai-infra\n\n" +
		"Build intelligent AI-powered applications with LLM orchestration, agent frameworks, MCP servers, and powerful tool execution capabilities.\n\n" +
		"## Installation\n\n" +
		"```bash\npip install ai-infra\n```\n\n" +
		"*Documentation is being loaded from GitHub. Please check back shortly.*\n",
	SvcInfra: "# svc-infra\n\n" +
		"Production-ready backend infrastructure with authentication, database integration, caching, job queues, and comprehensive observability.\n\n" +
		"## Installation\n\n" +
		"```bash\npip install svc-infra\n```\n\n" +
		"*Documentation is being loaded from GitHub. Please check back shortly.*\n",
	FinInfra: "# fin-infra\n\n" +
		"Complete financial and billing infrastructure for payments, subscriptions, invoicing, and usage-based billing.\n\n" +
		"## Installation\n\n" +
		"```bash\npip install fin-infra\n```\n\n" +
		"*Documentation is being loaded from GitHub. Please check back shortly.*\n",
}

// FallbackContent returns the bundled main document for a package.
func FallbackContent(p Package) (string, bool) {
	s, ok := fallbackContent[p]
	return s, ok
}
