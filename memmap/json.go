package memmap

import "github.com/launchdarkly/go-jsonstream/v3/jwriter"

// PrintDetailedMap writes a json description of the map's logical content. This
// is a diagnostic aid for inspecting what the boot stage handed over; the json
// form is not the handoff format.
func (m *Map) PrintDetailedMap(writer *jwriter.Writer) {
	obj := writer.Object()
	defer obj.End()

	obj.Name("EntryCount").Int(len(m.Regions()))

	regions := obj.Name("Regions").Array()
	defer regions.End()

	for _, region := range m.Regions() {
		o := regions.Object()
		region.printParameters(&o)
		o.End()
	}
}

func (r Region) printParameters(json *jwriter.ObjectState) {
	json.Name("Start").String(r.Start.String())
	json.Name("Len").Int(int(r.Len))
	json.Name("Type").String(r.Type.String())
}
