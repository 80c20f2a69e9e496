package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rheo/rheo/internal/exercise"
	"github.com/rheo/rheo/internal/journey"
	"github.com/rheo/rheo/internal/screen"
	sessionscreen "github.com/rheo/rheo/internal/screens/session"
)

var playCmd = &cobra.Command{
	Use:   "play <node>",
	Short: "Start the lesson at a journey node",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		nodeID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("node must be a number: %q", args[0])
		}
		return runApp(cmd, func(e *env) (screen.Screen, error) {
			node, exercises, err := lessonFor(e, nodeID)
			if err != nil {
				return nil, err
			}
			return sessionscreen.New(node, exercises, sessionscreen.Deps{
				Service:  e.service,
				Events:   e.store.EventRepo(),
				Logger:   e.logger,
				Language: e.cfg.Language,
			}), nil
		})
	},
}

// lessonFor resolves a playable node and its exercises.
func lessonFor(e *env, nodeID int) (journey.Node, []exercise.Descriptor, error) {
	node, ok := e.service.Path().Node(nodeID)
	if !ok {
		return journey.Node{}, nil, fmt.Errorf("%w: %d", journey.ErrUnknownNode, nodeID)
	}
	if st := e.service.Progress()[nodeID].Status; !st.Playable() {
		return journey.Node{}, nil, fmt.Errorf("node %d (%s) is locked", nodeID, node.Title)
	}
	exercises, err := e.catalog.Lookup(nodeID, e.cfg.Language)
	if err != nil {
		return journey.Node{}, nil, err
	}
	return node, exercises, nil
}
