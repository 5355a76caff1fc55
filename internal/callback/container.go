package callback

import (
	"traind/pkg/types"
)

// Container holds an ordered list of callbacks and forwards each lifecycle
// event to every callback in append order, synchronously. A nil log record
// is replaced with an empty one before dispatch, so hooks never see nil.
type Container struct {
	trainer   Trainer
	callbacks []Callback
}

// NewContainer builds a container over the given callbacks, dispatch order =
// argument order.
func NewContainer(callbacks ...Callback) *Container {
	return &Container{callbacks: callbacks}
}

// Append adds a callback at the end of the dispatch order. If a trainer is
// already bound it is propagated to the new callback immediately, so late
// appends need no separate binding step.
func (c *Container) Append(cb Callback) {
	if c.trainer != nil {
		cb.SetTrainer(c.trainer)
	}
	c.callbacks = append(c.callbacks, cb)
}

// SetTrainer stores the driver reference and propagates it to every
// currently attached callback.
func (c *Container) SetTrainer(t Trainer) {
	c.trainer = t
	for _, cb := range c.callbacks {
		cb.SetTrainer(t)
	}
}

// Len reports the number of attached callbacks.
func (c *Container) Len() int { return len(c.callbacks) }

func (c *Container) OnTrainBegin(logs *types.TrainBeginLogs) error {
	if logs == nil {
		logs = &types.TrainBeginLogs{}
	}
	for _, cb := range c.callbacks {
		if err := cb.OnTrainBegin(logs); err != nil {
			return err
		}
	}
	return nil
}

func (c *Container) OnTrainEnd(logs *types.TrainEndLogs) error {
	if logs == nil {
		logs = &types.TrainEndLogs{}
	}
	for _, cb := range c.callbacks {
		if err := cb.OnTrainEnd(logs); err != nil {
			return err
		}
	}
	return nil
}

func (c *Container) OnEpochBegin(epoch int, logs *types.EpochBeginLogs) error {
	if logs == nil {
		logs = &types.EpochBeginLogs{}
	}
	for _, cb := range c.callbacks {
		if err := cb.OnEpochBegin(epoch, logs); err != nil {
			return err
		}
	}
	return nil
}

func (c *Container) OnEpochEnd(epoch int, logs *types.EpochEndLogs) error {
	if logs == nil {
		logs = &types.EpochEndLogs{}
	}
	for _, cb := range c.callbacks {
		if err := cb.OnEpochEnd(epoch, logs); err != nil {
			return err
		}
	}
	return nil
}

func (c *Container) OnBatchBegin(batch int, logs *types.BatchBeginLogs) error {
	if logs == nil {
		logs = &types.BatchBeginLogs{}
	}
	for _, cb := range c.callbacks {
		if err := cb.OnBatchBegin(batch, logs); err != nil {
			return err
		}
	}
	return nil
}

func (c *Container) OnBatchEnd(batch int, logs *types.BatchEndLogs) error {
	if logs == nil {
		logs = &types.BatchEndLogs{}
	}
	for _, cb := range c.callbacks {
		if err := cb.OnBatchEnd(batch, logs); err != nil {
			return err
		}
	}
	return nil
}
