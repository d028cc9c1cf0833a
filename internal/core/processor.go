package core

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cloudwego/eino/schema"

	"hyperassist/pkg"
)

// DefaultPipeline implements the Pipeline interface
type DefaultPipeline struct {
	nodes  map[string]Node
	config Config
	flow   GraphFlow
}

// NewPipeline creates a new pipeline processor
func NewPipeline(config Config) Pipeline {
	return &DefaultPipeline{
		nodes:  make(map[string]Node),
		config: config,
		flow:   config.Graph.DefaultFlow,
	}
}

// Execute runs the pipeline flow with the given input
func (p *DefaultPipeline) Execute(ctx context.Context, input PipelineInput) (*PipelineOutput, error) {
	startTime := time.Now()

	log.Printf("🚀 Starting pipeline for customer: %s", input.CustomerID)

	nodeInput := NodeInput{
		RawMessage:  input.Message,
		CustomerID:  input.CustomerID,
		RawLocation: input.Location,
		Metadata:    make(map[string]any),
	}

	currentNode := p.flow.StartNode
	output := &PipelineOutput{
		Metadata: make(map[string]any),
	}

	var executionPath []string

	for currentNode != "" && currentNode != "complete" {
		executionPath = append(executionPath, currentNode)

		node, exists := p.nodes[currentNode]
		if !exists {
			return nil, fmt.Errorf("node not found: %s", currentNode)
		}

		nodeOutput, err := node.Execute(ctx, nodeInput)
		if err != nil {
			log.Printf("❌ Error executing node %s: %v", currentNode, err)
			return nil, fmt.Errorf("error executing node %s: %v", currentNode, err)
		}

		// Node errors are non-fatal; they are surfaced in the result metadata.
		if nodeOutput.Error != nil {
			log.Printf("⚠️ Node %s returned error: %v", currentNode, nodeOutput.Error)
			output.Metadata["errors"] = append(getStringSlice(output.Metadata, "errors"), nodeOutput.Error.Error())
		}

		p.processNodeOutput(currentNode, nodeOutput, output, &nodeInput)

		if nodeOutput.Complete {
			break
		}

		nextNode := nodeOutput.NextNode
		if nextNode == "" {
			nextNode = p.getNextNode(currentNode, nodeOutput)
		}
		currentNode = nextNode
	}

	processingTime := time.Since(startTime)
	output.ProcessingTime = processingTime.Milliseconds()
	output.Metadata["execution_path"] = executionPath

	log.Printf("🏁 Pipeline completed in %.2fms (intent=%s, docs=%d)",
		float64(processingTime.Nanoseconds())/1000000, output.Intent, len(output.Documents))

	return output, nil
}

// AddNode adds a node to the pipeline
func (p *DefaultPipeline) AddNode(node Node) error {
	if node == nil {
		return fmt.Errorf("node cannot be nil")
	}

	nodeName := node.GetName()
	if nodeName == "" {
		return fmt.Errorf("node name cannot be empty")
	}

	p.nodes[nodeName] = node
	return nil
}

// GetNode retrieves a node by name
func (p *DefaultPipeline) GetNode(name string) (Node, error) {
	node, exists := p.nodes[name]
	if !exists {
		return nil, fmt.Errorf("node not found: %s", name)
	}
	return node, nil
}

// SetFlow sets the execution flow
func (p *DefaultPipeline) SetFlow(flow GraphFlow) error {
	if flow.StartNode == "" {
		return fmt.Errorf("start node cannot be empty")
	}
	p.flow = flow
	return nil
}

// processNodeOutput merges node output into the result bundle and the input
// handed to downstream nodes
func (p *DefaultPipeline) processNodeOutput(nodeName string, nodeOutput NodeOutput, globalOutput *PipelineOutput, nodeInput *NodeInput) {
	for key, value := range nodeOutput.Data {
		switch key {
		case "redacted_message":
			if msg, ok := value.(string); ok {
				globalOutput.RedactedMessage = msg
				nodeInput.RedactedMessage = msg
			}
		case "intent":
			if intent, ok := value.(string); ok {
				globalOutput.Intent = intent
				nodeInput.Intent = intent
			}
		case "mood":
			if mood, ok := value.(string); ok {
				globalOutput.Mood = mood
				nodeInput.Mood = mood
			}
		case "profile":
			if profile, ok := value.(*pkg.CustomerProfile); ok {
				globalOutput.Profile = profile
				nodeInput.Profile = profile
			}
		case "documents":
			if docs, ok := value.([]pkg.Document); ok {
				globalOutput.Documents = docs
				nodeInput.Documents = docs
			}
		case "prompt_messages":
			if messages, ok := value.([]*schema.Message); ok {
				nodeInput.PromptMessages = messages
			}
		case "reply":
			if reply, ok := value.(string); ok {
				globalOutput.Reply = reply
			}
		default:
			globalOutput.Metadata[fmt.Sprintf("%s_%s", nodeName, key)] = value
			nodeInput.Metadata[key] = value
		}
	}
}

// getNextNode determines the next node based on flow edges and conditions
func (p *DefaultPipeline) getNextNode(currentNode string, nodeOutput NodeOutput) string {
	edges, exists := p.flow.Edges[currentNode]
	if !exists || len(edges) == 0 {
		return "complete"
	}

	for _, edge := range sortEdgesByPriority(edges) {
		if evaluateCondition(edge.Condition, nodeOutput) {
			return edge.To
		}
	}

	return edges[0].To
}

// sortEdgesByPriority sorts edges by priority (lower number = higher priority)
func sortEdgesByPriority(edges []GraphEdge) []GraphEdge {
	sorted := make([]GraphEdge, len(edges))
	copy(sorted, edges)

	for i := 0; i < len(sorted)-1; i++ {
		for j := 0; j < len(sorted)-i-1; j++ {
			if sorted[j].Priority > sorted[j+1].Priority {
				sorted[j], sorted[j+1] = sorted[j+1], sorted[j]
			}
		}
	}

	return sorted
}

// evaluateCondition checks whether all condition entries match the node output
func evaluateCondition(condition map[string]any, nodeOutput NodeOutput) bool {
	if len(condition) == 0 {
		return true
	}

	for key, expectedValue := range condition {
		actualValue, exists := nodeOutput.Data[key]
		if !exists {
			return false
		}
		if actualValue != expectedValue {
			return false
		}
	}

	return true
}

func getStringSlice(metadata map[string]any, key string) []string {
	if value, exists := metadata[key]; exists {
		if slice, ok := value.([]string); ok {
			return slice
		}
	}
	return []string{}
}
