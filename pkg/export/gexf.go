package export

import (
	"encoding/xml"
	"fmt"
	"os"
	"time"

	"github.com/orbitalsec/astrarisk/pkg/threatgraph"
	"github.com/orbitalsec/astrarisk/pkg/visualization"
)

// GEXF 1.2 document structure. Only the parts the graph viewers we target
// actually read are emitted: node labels, a category attribute, edge labels
// and optional viz positions.
type gexfDocument struct {
	XMLName xml.Name  `xml:"gexf"`
	XMLNS   string    `xml:"xmlns,attr"`
	Viz     string    `xml:"xmlns:viz,attr,omitempty"`
	Version string    `xml:"version,attr"`
	Meta    gexfMeta  `xml:"meta"`
	Graph   gexfGraph `xml:"graph"`
}

type gexfMeta struct {
	LastModified string `xml:"lastmodifieddate,attr"`
	Creator      string `xml:"creator"`
	Description  string `xml:"description"`
}

type gexfGraph struct {
	Mode       string          `xml:"mode,attr"`
	EdgeType   string          `xml:"defaultedgetype,attr"`
	Attributes []gexfAttrClass `xml:"attributes"`
	Nodes      []gexfNode      `xml:"nodes>node"`
	Edges      []gexfEdge      `xml:"edges>edge"`
}

type gexfAttrClass struct {
	Class string     `xml:"class,attr"`
	Attrs []gexfAttr `xml:"attribute"`
}

type gexfAttr struct {
	ID    string `xml:"id,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

type gexfNode struct {
	ID        uint64         `xml:"id,attr"`
	Label     string         `xml:"label,attr"`
	AttValues []gexfAttValue `xml:"attvalues>attvalue"`
	Position  *gexfPosition  `xml:"viz:position,omitempty"`
}

type gexfAttValue struct {
	For   string `xml:"for,attr"`
	Value string `xml:"value,attr"`
}

type gexfPosition struct {
	X float64 `xml:"x,attr"`
	Y float64 `xml:"y,attr"`
	Z float64 `xml:"z,attr"`
}

type gexfEdge struct {
	ID     uint64 `xml:"id,attr"`
	Source uint64 `xml:"source,attr"`
	Target uint64 `xml:"target,attr"`
	Label  string `xml:"label,attr"`
}

// gexfFile is the graph file written into the export directory.
const gexfFile = "Threat_Graph.gexf"

// ExportGEXF writes the graph as GEXF 1.2. When positions is non-nil the
// nodes carry viz coordinates, so layouts computed by the visualization
// package survive into the file.
func (e *Exporter) ExportGEXF(g *threatgraph.Graph, positions map[uint64]visualization.Position) error {
	start := time.Now()

	doc := gexfDocument{
		XMLNS:   "http://www.gexf.net/1.2draft",
		Version: "1.2",
		Meta: gexfMeta{
			LastModified: time.Now().Format("2006-01-02"),
			Creator:      "astrarisk",
			Description:  "Space mission threat relation graph",
		},
		Graph: gexfGraph{
			Mode:     "static",
			EdgeType: "directed",
			Attributes: []gexfAttrClass{{
				Class: "node",
				Attrs: []gexfAttr{{ID: "0", Title: "category", Type: "string"}},
			}},
		},
	}
	if positions != nil {
		doc.Viz = "http://www.gexf.net/1.2draft/viz"
	}

	for _, node := range g.Nodes() {
		gn := gexfNode{
			ID:    node.ID,
			Label: node.Name,
			AttValues: []gexfAttValue{
				{For: "0", Value: node.Category},
			},
		}
		if pos, ok := positions[node.ID]; ok {
			gn.Position = &gexfPosition{X: pos.X, Y: pos.Y}
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, gn)
	}

	for _, edge := range g.Edges() {
		doc.Graph.Edges = append(doc.Graph.Edges, gexfEdge{
			ID:     edge.ID,
			Source: edge.FromID,
			Target: edge.ToID,
			Label:  edge.Type,
		})
	}

	f, err := os.Create(e.path(gexfFile))
	if err != nil {
		e.recordError()
		return fmt.Errorf("creating %s: %w", gexfFile, err)
	}
	defer f.Close()

	if _, err := f.WriteString(xml.Header); err != nil {
		e.recordError()
		return fmt.Errorf("writing %s: %w", gexfFile, err)
	}

	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		e.recordError()
		return fmt.Errorf("encoding %s: %w", gexfFile, err)
	}

	if err := f.Close(); err != nil {
		e.recordError()
		return err
	}

	e.record("gexf", 1, start)
	return nil
}
