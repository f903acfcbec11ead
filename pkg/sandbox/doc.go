// Package sandbox is the public, in-process entry point to the safety
// sandbox: parse an agent plan, evaluate its risk against policy, and run it
// inside a confined per-environment workspace with a pre-execution snapshot
// and an append-only, checksummed audit trail.
//
// Typical use:
//
//	client, err := sandbox.Open(baseDir)
//	actions := client.Parse(planText)
//	analysis := client.Evaluate(actions, model.EnvDev)
//	result, err := client.Run(sandbox.RunOptions{
//		Env:      model.EnvDev,
//		Task:     "prepare release folder",
//		Actions:  actions,
//		Analysis: analysis,
//	})
//
// All filesystem mutations stay confined to the environment's workspace
// root; a snapshot is taken before every batch and can be restored with
// Client.Restore.
package sandbox
