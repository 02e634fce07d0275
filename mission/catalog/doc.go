// Package catalog loads named rover missions from a directory.
//
// The catalog package handles:
//   - Resolving mission names to files (name, name.txt, name.yaml, name.yml)
//   - Parsing text and YAML mission files through the input package
//   - Caching parsed missions
//   - Listing every loadable mission in the directory
//
// Mission Files:
//
// Text files use the plain mission format: plateau dimensions on the first
// line, then a position line and an instruction line per rover. YAML files
// carry the same data plus a name and a description.
//
// Usage:
//
//	manager, err := catalog.NewManager("missions")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	entry, err := manager.LoadMission("classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	missions, err := manager.ListMissions()
package catalog
