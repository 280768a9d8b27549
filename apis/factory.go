/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

import "reflect"

// ObjectFactory is the "Object Factory" collaborator: the thing the
// Injector asks to resolve a setter's (parameterType, propertyName)
// pair. Returning (nil, false) tells the Injector to skip that setter.
//
// A full RPC framework or DI container could satisfy this with its own
// bean graph; this module ships a default ObjectFactory (see package
// factory) that resolves extension points of other interfaces through
// the host Environment: by name first, then their adaptive() singleton.
type ObjectFactory interface {
	Get(paramType reflect.Type, name string) (value any, ok bool)
}
