package scene

import (
	"fmt"
	"sort"

	"github.com/Carmen-Shannon/glowcube/common"
	"github.com/Carmen-Shannon/glowcube/engine/game_object"
)

// noParent marks a root node.
const noParent = -1

type node struct {
	obj    game_object.GameObject
	parent int
}

// graph is an arena of nodes addressed by index. A parent always has a lower index than its
// children, so walking the arena in order visits parents first and cycles cannot form.
type graph struct {
	nodes []node
}

func (g *graph) add(obj game_object.GameObject) int {
	g.nodes = append(g.nodes, node{obj: obj, parent: noParent})
	return len(g.nodes) - 1
}

func (g *graph) addChild(parent int, obj game_object.GameObject) (int, error) {
	if parent < 0 || parent >= len(g.nodes) {
		return noParent, fmt.Errorf("parent node %d does not exist", parent)
	}
	g.nodes = append(g.nodes, node{obj: obj, parent: parent})
	return len(g.nodes) - 1, nil
}

func (g *graph) len() int {
	return len(g.nodes)
}

func (g *graph) object(i int) game_object.GameObject {
	return g.nodes[i].obj
}

func (g *graph) parent(i int) int {
	return g.nodes[i].parent
}

// enabled reports whether a node and all of its ancestors are enabled.
func (g *graph) enabled(i int) bool {
	for ; i != noParent; i = g.nodes[i].parent {
		if !g.nodes[i].obj.Enabled() {
			return false
		}
	}
	return true
}

// worldMatrix composes the local matrices from the root down to node i.
func (g *graph) worldMatrix(i int) [16]float32 {
	m := g.nodes[i].obj.LocalMatrix()
	for p := g.nodes[i].parent; p != noParent; p = g.nodes[p].parent {
		local := g.nodes[p].obj.LocalMatrix()
		common.Mul4(m[:], local[:], m[:])
	}
	return m
}

// drawItem is one node queued for the main pass.
type drawItem struct {
	index       int
	pipelineKey string
	// distance from the camera, used to sort transparent surfaces
	distance float32
}

// passRank orders pipelines: opaque surfaces, then lines, then transparent surfaces, then points.
func passRank(pipelineKey string, ranks map[string]int) int {
	if r, ok := ranks[pipelineKey]; ok {
		return r
	}
	return len(ranks)
}

// sortDrawItems orders items by pass, then back-to-front for sorted passes, then by node index.
func sortDrawItems(items []drawItem, ranks map[string]int, sorted map[string]bool) {
	sort.SliceStable(items, func(a, b int) bool {
		ra, rb := passRank(items[a].pipelineKey, ranks), passRank(items[b].pipelineKey, ranks)
		if ra != rb {
			return ra < rb
		}
		if sorted[items[a].pipelineKey] && items[a].distance != items[b].distance {
			return items[a].distance > items[b].distance
		}
		return items[a].index < items[b].index
	})
}
