// Package graph defines the navigable building graph: nodes, directed edges,
// floors, coordinates and the room → access-node index.
//
// Overview:
//
//   - A Graph is built once (via Builder or one of the loaders) and is never
//     mutated afterwards. Every request shares the same *Graph without locks.
//   - Adjacency is directed in storage. A corridor that can be walked both
//     ways is stored as two edges; Builder.Connect inserts both at once.
//   - Neighbor IDs are sorted at build time so that every traversal visits
//     them in the same order. Search results therefore never depend on Go's
//     randomized map iteration.
//   - Buildings maps a room ID to the ordered list of node IDs that give
//     access to that room. Many nodes may share one room ID.
//
// Loading:
//
//   - LoadJSON / LoadYAML decode the document shape produced by the floor
//     plan pipeline ({"nodes": {...}, "buildings": {...}}).
//   - LoadFile picks the decoder by file extension.
//   - A neighbor entry whose "dist" is omitted receives the haversine
//     distance between the two node coordinates.
//
// Spatial queries:
//
//   - NewSpatialIndex builds an R-tree over node coordinates so that a raw
//     position can be resolved to its nearest graph nodes.
//
// Errors (sentinel):
//
//	– ErrEmptyNodeID       if a node or neighbor ID is empty.
//	– ErrDuplicateNode     if the same node ID is added twice.
//	– ErrNodeNotFound      if an edge or room references an unknown source node.
//	– ErrNegativeDistance  if an edge distance is negative, NaN or infinite.
//	– ErrUnsupportedFormat if LoadFile cannot infer a decoder.
package graph
