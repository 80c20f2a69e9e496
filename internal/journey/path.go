// Package journey models the learner's path of nodes, their progress
// through it, and how that progress is persisted.
package journey

// NodeType identifies what a journey node opens.
type NodeType string

const (
	NodeLesson     NodeType = "lesson"
	NodeVideo      NodeType = "video"
	NodeChest      NodeType = "chest"
	NodeDaily      NodeType = "daily"
	NodePlayground NodeType = "playground"
	NodeBoss       NodeType = "boss"
)

// Icon returns a glyph for the node type.
func (t NodeType) Icon() string {
	switch t {
	case NodeLesson:
		return "📘"
	case NodeVideo:
		return "🎬"
	case NodeChest:
		return "🎁"
	case NodeDaily:
		return "📅"
	case NodePlayground:
		return "🧪"
	case NodeBoss:
		return "⚔️"
	}
	return "•"
}

// Node is one stop on the journey path.
type Node struct {
	ID      int
	Type    NodeType
	Title   string
	Skill   string
	Chapter int
}

// Difficulty is the 1-3 rating shown in the lesson preview.
func (n Node) Difficulty() int {
	switch n.Type {
	case NodeBoss:
		return 3
	case NodeDaily:
		return 2
	}
	return 1
}

// Chapter groups consecutive nodes.
type Chapter struct {
	Number int
	Name   string
	Accent string // hex colour
}

// Path is the ordered list of nodes the learner walks. Traversal order
// is slice order.
type Path struct {
	Nodes    []Node
	Chapters []Chapter
}

// Node returns the node with id.
func (p Path) Node(id int) (Node, bool) {
	for _, n := range p.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Chapter returns chapter number n.
func (p Path) Chapter(n int) (Chapter, bool) {
	for _, c := range p.Chapters {
		if c.Number == n {
			return c, true
		}
	}
	return Chapter{}, false
}

// ChapterNodes returns the nodes of chapter n in path order.
func (p Path) ChapterNodes(n int) []Node {
	var out []Node
	for _, node := range p.Nodes {
		if node.Chapter == n {
			out = append(out, node)
		}
	}
	return out
}

// DefaultPath returns the built-in ten-chapter path.
func DefaultPath() Path {
	return Path{
		Nodes:    defaultNodes(),
		Chapters: defaultChapters(),
	}
}

func defaultChapters() []Chapter {
	return []Chapter{
		{1, "Basics", "#58CC02"},
		{2, "Flow Control", "#CE82FF"},
		{3, "Loops", "#1CB0F6"},
		{4, "Functions", "#FF9600"},
		{5, "Data Struct I", "#FF4B4B"},
		{6, "Algorithms I", "#2DD4BF"},
		{7, "Data Struct II", "#F472B6"},
		{8, "Algorithms II", "#818CF8"},
		{9, "Advanced", "#FB923C"},
		{10, "Mastery", "#FCD34D"},
	}
}

func defaultNodes() []Node {
	return []Node{
		{1, NodeLesson, "Read & Trace", "variables", 1},
		{2, NodeLesson, "Debug It!", "conditionals", 1},
		{3, NodeVideo, "Watch: Variables", "variables", 1},
		{4, NodeChest, "Loot Crate", "", 1},

		{5, NodeLesson, "Conditional Logic", "conditionals", 2},
		{6, NodeLesson, "Boolean Mastery", "conditionals", 2},
		{7, NodeDaily, "Today's Challenge", "mixed", 2},
		{8, NodeVideo, "Watch: Conditionals", "conditionals", 2},

		{9, NodeLesson, "Loop Basics", "loops", 3},
		{10, NodeLesson, "Nested Loops", "loops", 3},
		{11, NodePlayground, "Try: Loops", "loops", 3},
		{12, NodeChest, "Loot Crate", "", 3},

		{13, NodeLesson, "Function Design", "functions", 4},
		{14, NodeLesson, "Scope & Closures", "functions", 4},
		{15, NodeVideo, "Watch: Functions", "functions", 4},
		{16, NodeBoss, "Boss: Recursion", "functions", 4},

		{17, NodeLesson, "Arrays Deep", "data_structures", 5},
		{18, NodeLesson, "Strings & Maps", "data_structures", 5},
		{19, NodePlayground, "Try: Collections", "data_structures", 5},
		{20, NodeChest, "Loot Crate", "", 5},

		{21, NodeLesson, "Sorting Showdown", "algorithms", 6},
		{22, NodeLesson, "Binary Search", "algorithms", 6},
		{23, NodeLesson, "Time Complexity", "complexity", 6},
		{24, NodeBoss, "Boss: Algorithms", "algorithms", 6},

		{25, NodeLesson, "Stack & Queue", "data_structures", 7},
		{26, NodeLesson, "Linked Lists", "data_structures", 7},
		{27, NodeLesson, "Trees Intro", "data_structures", 7},
		{28, NodeVideo, "Watch: Structures", "data_structures", 7},

		{29, NodeLesson, "Recursive Thinking", "algorithms", 8},
		{30, NodeLesson, "Divide & Conquer", "algorithms", 8},
		{31, NodeLesson, "Memoization & DP", "dp", 8},
		{32, NodeBoss, "Boss: Recursion++", "algorithms", 8},

		{33, NodeLesson, "Graph Basics", "graphs", 9},
		{34, NodeLesson, "BFS & DFS", "graphs", 9},
		{35, NodeLesson, "Two Pointer", "algorithms", 9},
		{36, NodePlayground, "Try: Graphs", "graphs", 9},

		{37, NodeLesson, "DP Patterns", "dp", 10},
		{38, NodeLesson, "Problem Strategy", "algorithms", 10},
		{39, NodeLesson, "Interview Sim", "algorithms", 10},
		{40, NodeBoss, "Final Boss", "algorithms", 10},
		{41, NodeChest, "Gold Chest", "", 10},
		{42, NodeDaily, "Graduation 🎓", "mixed", 10},
	}
}
