// Package testutil provides test doubles and fixtures for diarize packages.
//
// FakeProvider stands in for a diarization backend and records every
// request it receives. FakeFactory counts how often the pipeline is
// acquired, so tests can assert that configuration failures never reach it.
//
//	fake := testutil.NewFakeProvider(testutil.ExampleSegments()...)
//	factory := testutil.NewFakeFactory(fake)
//	reg := testutil.Registry("fake", factory)
//	audio := testutil.AudioFile(t, "meeting.wav")
package testutil
