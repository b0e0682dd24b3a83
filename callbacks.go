package htmltox

// callbackFlags selects which native callbacks are wired for a conversion.
type callbackFlags uint8

const (
	callbackPhase callbackFlags = 1 << iota
	callbackProgress
	callbackFinished
	callbackWarning
	callbackError
)

func (f callbackFlags) has(flag callbackFlags) bool {
	return f&flag != 0
}

// subscribedCallbacks snapshots current subscriber counts. It is computed once per
// conversion; handlers added later are still called but do not cause new
// native registrations.
func (c *converterBase) subscribedCallbacks() callbackFlags {
	var f callbackFlags
	if c.phaseChanged.count() > 0 {
		f |= callbackPhase
	}
	if c.progressChanged.count() > 0 {
		f |= callbackProgress
	}
	if c.finished.count() > 0 {
		f |= callbackFinished
	}
	if c.warning.count() > 0 {
		f |= callbackWarning
	}
	if c.errored.count() > 0 {
		f |= callbackError
	}
	return f
}

// registerEvents wires the native callbacks selected by flags.
func (c *converterBase) registerEvents(conv Handle, flags callbackFlags) {
	if flags.has(callbackPhase) {
		c.module.SetPhaseChangedCallback(conv, c.onPhaseChanged)
	}
	if flags.has(callbackProgress) {
		c.module.SetProgressChangedCallback(conv, c.onProgressChanged)
	}
	if flags.has(callbackFinished) {
		c.module.SetFinishedCallback(conv, c.onFinished)
	}
	if flags.has(callbackWarning) {
		c.module.SetWarningCallback(conv, c.onWarning)
	}
	if flags.has(callbackError) {
		c.module.SetErrorCallback(conv, c.onError)
	}
}

func (c *converterBase) onPhaseChanged(conv Handle) {
	if c.phaseChanged.count() == 0 {
		return
	}
	phaseCount := c.module.GetPhaseCount(conv)
	current := c.module.GetCurrentPhase(conv)
	c.phaseChanged.emit(PhaseChangedEvent{
		Document:     c.ProcessingDocument(),
		PhaseCount:   phaseCount,
		CurrentPhase: current,
		Description:  c.module.GetPhaseDescription(conv, current),
	})
}

func (c *converterBase) onProgressChanged(conv Handle) {
	if c.progressChanged.count() == 0 {
		return
	}
	c.progressChanged.emit(ProgressChangedEvent{
		Document:    c.ProcessingDocument(),
		Description: c.module.GetProgressDescription(conv),
	})
}

func (c *converterBase) onFinished(_ Handle, success int) {
	c.finished.emit(FinishedEvent{
		Document: c.ProcessingDocument(),
		Success:  success == 1,
	})
}

func (c *converterBase) onWarning(_ Handle, message string) {
	c.cfg.logger.Warn("engine warning", "message", message)
	c.warning.emit(WarningEvent{Document: c.ProcessingDocument(), Message: message})
}

func (c *converterBase) onError(_ Handle, message string) {
	c.cfg.logger.Error("engine error", "message", message)
	c.errored.emit(ErrorEvent{Document: c.ProcessingDocument(), Message: message})
}
