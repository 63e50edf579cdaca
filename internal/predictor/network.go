package predictor

import (
	"fmt"

	"gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

const InputFeatures = 3

type Layer struct {
	Units      int     `json:"units"`
	Activation string  `json:"activation"`
	Dropout    float64 `json:"dropout,omitempty"`
}

// Topology of the magnitude regressor. The network is built but has never
// been trained; predictions come from the simulator.
var Topology = []Layer{
	{Units: 256, Activation: "tanh", Dropout: 0.3},
	{Units: 128, Activation: "tanh", Dropout: 0.2},
	{Units: 64, Activation: "tanh"},
	{Units: 1, Activation: "linear"},
}

type Network struct {
	g          *gorgonia.ExprGraph
	output     *gorgonia.Node
	learnables gorgonia.Nodes
	layers     []Layer
}

// NewNetwork builds the expression graph for a single-row batch.
func NewNetwork(layers []Layer) (*Network, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("network needs at least one layer")
	}

	g := gorgonia.NewGraph()
	x := gorgonia.NewMatrix(g, tensor.Float64, gorgonia.WithShape(1, InputFeatures), gorgonia.WithName("x"))

	n := &Network{g: g, layers: layers}
	h := x
	in := InputFeatures

	for i, l := range layers {
		if l.Units <= 0 {
			return nil, fmt.Errorf("layer %d: units must be positive, got %d", i, l.Units)
		}

		w := gorgonia.NewMatrix(g, tensor.Float64, gorgonia.WithShape(in, l.Units),
			gorgonia.WithName(fmt.Sprintf("w%d", i)), gorgonia.WithInit(gorgonia.GlorotU(1.0)))
		b := gorgonia.NewMatrix(g, tensor.Float64, gorgonia.WithShape(1, l.Units),
			gorgonia.WithName(fmt.Sprintf("b%d", i)), gorgonia.WithInit(gorgonia.Zeroes()))
		n.learnables = append(n.learnables, w, b)

		var err error
		if h, err = gorgonia.Mul(h, w); err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		if h, err = gorgonia.Add(h, b); err != nil {
			return nil, fmt.Errorf("layer %d bias: %w", i, err)
		}

		switch l.Activation {
		case "tanh":
			if h, err = gorgonia.Tanh(h); err != nil {
				return nil, fmt.Errorf("layer %d activation: %w", i, err)
			}
		case "linear", "":
		default:
			return nil, fmt.Errorf("layer %d: unsupported activation %q", i, l.Activation)
		}

		if l.Dropout > 0 {
			if h, err = gorgonia.Dropout(h, l.Dropout); err != nil {
				return nil, fmt.Errorf("layer %d dropout: %w", i, err)
			}
		}
		in = l.Units
	}

	n.output = h
	return n, nil
}

// ParamCount is the number of trainable weights and biases.
func (n *Network) ParamCount() int {
	total := 0
	for _, node := range n.learnables {
		total += node.Shape().TotalSize()
	}
	return total
}

func (n *Network) Layers() []Layer {
	return append([]Layer(nil), n.layers...)
}

// OutputShape is the shape of the regression head.
func (n *Network) OutputShape() []int {
	return append([]int(nil), n.output.Shape()...)
}
